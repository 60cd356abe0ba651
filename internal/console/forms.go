package console

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mesh-intelligence/shipmgr/internal/report"
	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

// field is one prompt of a form. check validates non-empty input.
type field struct {
	label    string
	optional bool
	check    func(string) error
}

type form struct {
	title  string
	fields []field
}

// fill asks every field in order. values carries the previous answers: they
// are shown in brackets and kept on empty input. clearKey empties an
// optional field.
func (c *Console) fill(f form, values []string) error {
	fmt.Fprintf(c.out, "-- %s --\n", f.title)
	for i, fld := range f.fields {
		for {
			label := fld.label
			if values[i] != "" {
				label += " [" + values[i] + "]"
			}
			in, err := c.ask(label + ": ")
			if err != nil {
				return err
			}
			if in == cancelKey {
				return errCancelled
			}
			if in == clearKey && fld.optional {
				values[i] = ""
				break
			}
			if in == "" {
				in = values[i]
			}
			if in == "" {
				if fld.optional {
					break
				}
				fmt.Fprintf(c.out, "%s is required.\n", fld.label)
				continue
			}
			if fld.check != nil {
				if err := fld.check(in); err != nil {
					fmt.Fprintf(c.out, "%s: %v\n", fld.label, err)
					continue
				}
			}
			values[i] = in
			break
		}
	}
	return nil
}

// runForm fills the form and submits it, reopening it with the previous
// answers while submit fails with NotFound or ConstraintViolation.
func (c *Console) runForm(f form, values []string, submit func(v []string) error) error {
	for {
		if err := c.fill(f, values); err != nil {
			return err
		}
		err := submit(values)
		if err == nil {
			return nil
		}
		if !isUserError(err) {
			return err
		}
		fmt.Fprintf(c.out, "Error: %v\n", err)
	}
}

func (c *Console) entityCommand(cmd string, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: %s <entity> [id]", cmd)
	}
	entity := args[0]
	id := ""
	if len(args) > 1 {
		id = args[1]
	}
	if cmd != "add" && id == "" {
		return fmt.Errorf("usage: %s %s <id>", cmd, entity)
	}

	var err error
	switch cmd {
	case "add":
		err = c.add(entity)
	case "edit":
		err = c.edit(entity, id)
	case "delete":
		err = c.delete(entity, id)
	}
	switch {
	case errors.Is(err, errCancelled):
		fmt.Fprintln(c.out, "Cancelled.")
		return nil
	case errors.Is(err, io.EOF):
		return nil
	}
	return err
}

var (
	farmerForm = form{title: "farmer", fields: []field{
		{label: "Name"},
		{label: "Contact", optional: true},
		{label: "Address", optional: true},
	}}
	productForm = form{title: "product", fields: []field{
		{label: "Name"},
		{label: "Unit price", check: nonNegative},
		{label: "Quantity", check: nonNegative},
	}}
	shipmentForm = form{title: "shipment", fields: []field{
		{label: "Farmer"},
		{label: "Product"},
		{label: "Quantity", check: positive},
		{label: "Date (YYYY-MM-DD)", check: validDate},
		{label: "Status (" + strings.Join(types.ShipmentStatuses, ", ") + ")", check: validStatus},
		{label: "Notes", optional: true},
	}}
	saleForm = form{title: "sale", fields: []field{
		{label: "Farmer"},
		{label: "Product"},
		{label: "Shipment ID", optional: true},
		{label: "Quantity", check: positive},
		{label: "Unit price (empty for product price)", optional: true, check: nonNegative},
	}}
	transferForm = form{title: "transfer", fields: []field{
		{label: "From farmer"},
		{label: "To farmer"},
		{label: "Product"},
		{label: "Quantity", check: positive},
		{label: "Note", optional: true},
	}}
	returnForm = form{title: "return", fields: []field{
		{label: "Farmer"},
		{label: "Product"},
		{label: "Quantity", check: positive},
		{label: "Refund amount", check: nonNegative},
		{label: "Note", optional: true},
	}}
)

func (c *Console) add(entity string) error {
	switch entity {
	case "farmer":
		return c.runForm(farmerForm, make([]string, 3), func(v []string) error {
			id, err := c.store.Farmers().Create(&types.Farmer{Name: v[0], Contact: v[1], Address: v[2]})
			return c.created("farmer", id, err)
		})
	case "product":
		return c.runForm(productForm, []string{"", "0", "0"}, func(v []string) error {
			id, err := c.store.Products().Create(&types.Product{Name: v[0], UnitPrice: number(v[1]), Quantity: number(v[2])})
			return c.created("product", id, err)
		})
	case "shipment":
		values := []string{"", "", "", time.Now().Format(types.DateLayout), types.ShipmentPending, ""}
		return c.runForm(shipmentForm, values, func(v []string) error {
			s, err := c.shipmentFrom(v)
			if err != nil {
				return err
			}
			id, err := c.store.Shipments().Create(s)
			return c.created("shipment", id, err)
		})
	case "sale":
		return c.runForm(saleForm, make([]string, 5), func(v []string) error {
			fid, err := c.resolveFarmer(v[0])
			if err != nil {
				return err
			}
			p, err := c.resolveProduct(v[1])
			if err != nil {
				return err
			}
			price := p.UnitPrice
			if v[4] != "" {
				price = number(v[4])
			}
			s := &types.Sale{FarmerID: fid, ProductID: p.ID, ShipmentID: v[2], Quantity: number(v[3]), UnitPrice: price}
			if err := c.store.CheckReferences(s.References()); err != nil {
				return err
			}
			id, err := c.store.Sales().Create(s)
			if err == nil {
				fmt.Fprintf(c.out, "Total paid: %s\n", c.render.Money(s.TotalPaid))
			}
			return c.created("sale", id, err)
		})
	case "transfer":
		return c.runForm(transferForm, make([]string, 5), func(v []string) error {
			from, err := c.resolveFarmer(v[0])
			if err != nil {
				return err
			}
			to, err := c.resolveFarmer(v[1])
			if err != nil {
				return err
			}
			p, err := c.resolveProduct(v[2])
			if err != nil {
				return err
			}
			id, err := c.store.Transfers().Create(&types.Transfer{
				FromFarmerID: from, ToFarmerID: to, ProductID: p.ID, Quantity: number(v[3]), Note: v[4],
			})
			return c.created("transfer", id, err)
		})
	case "return":
		return c.runForm(returnForm, []string{"", "", "", "0", ""}, func(v []string) error {
			fid, err := c.resolveFarmer(v[0])
			if err != nil {
				return err
			}
			p, err := c.resolveProduct(v[1])
			if err != nil {
				return err
			}
			id, err := c.store.Returns().Create(&types.Return{
				FarmerID: fid, ProductID: p.ID, Quantity: number(v[2]), RefundAmount: number(v[3]), Note: v[4],
			})
			return c.created("return", id, err)
		})
	}
	return fmt.Errorf("cannot add %q", entity)
}

func (c *Console) edit(entity, id string) error {
	switch entity {
	case "farmer":
		f, err := c.store.Farmers().Get(id)
		if err != nil {
			return err
		}
		values := []string{f.Name, f.Contact, f.Address}
		return c.runForm(farmerForm, values, func(v []string) error {
			return c.updated("farmer", id, c.store.Farmers().Update(id, types.FarmerPatch{
				Name:    changed(f.Name, v[0]),
				Contact: changed(f.Contact, v[1]),
				Address: changed(f.Address, v[2]),
			}))
		})
	case "product":
		p, err := c.store.Products().Get(id)
		if err != nil {
			return err
		}
		values := []string{p.Name, report.Quantity(p.UnitPrice), report.Quantity(p.Quantity)}
		orig := append([]string(nil), values...)
		return c.runForm(productForm, values, func(v []string) error {
			var patch types.ProductPatch
			patch.Name = changed(orig[0], v[0])
			if v[1] != orig[1] {
				patch.UnitPrice = ptr(number(v[1]))
			}
			if v[2] != orig[2] {
				patch.Quantity = ptr(number(v[2]))
			}
			return c.updated("product", id, c.store.Products().Update(id, patch))
		})
	case "shipment":
		s, err := c.store.Shipments().Get(id)
		if err != nil {
			return err
		}
		names, err := c.names()
		if err != nil {
			return err
		}
		values := []string{
			displayRef(names.Farmer(s.FarmerID), s.FarmerID), displayRef(names.Product(s.ProductID), s.ProductID),
			report.Quantity(s.Quantity), s.Date.Format(types.DateLayout), s.Status, s.Notes,
		}
		return c.runForm(shipmentForm, values, func(v []string) error {
			next, err := c.shipmentFrom(v)
			if err != nil {
				return err
			}
			patch := types.ShipmentPatch{
				FarmerID:  changed(s.FarmerID, next.FarmerID),
				ProductID: changed(s.ProductID, next.ProductID),
				Status:    changed(s.Status, next.Status),
				Notes:     changed(s.Notes, next.Notes),
			}
			if next.Quantity != s.Quantity {
				patch.Quantity = &next.Quantity
			}
			if !next.Date.Equal(s.Date) {
				patch.Date = &next.Date
			}
			return c.updated("shipment", id, c.store.Shipments().Update(id, patch))
		})
	}
	return fmt.Errorf("cannot edit %q", entity)
}

func (c *Console) delete(entity, id string) error {
	var del func(string) error
	switch entity {
	case "farmer":
		del = c.store.Farmers().Delete
	case "product":
		del = c.store.Products().Delete
	case "shipment":
		del = c.store.Shipments().Delete
	case "sale":
		del = c.store.Sales().Delete
	case "transfer":
		del = c.store.Transfers().Delete
	case "return":
		del = c.store.Returns().Delete
	default:
		return fmt.Errorf("cannot delete %q", entity)
	}
	answer, err := c.ask(fmt.Sprintf("Delete %s %s? [y/N]: ", entity, id))
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		return errCancelled
	}
	if err := del(id); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Deleted %s %s.\n", entity, id)
	return nil
}

// shipmentFrom builds a shipment from shipment form answers, resolving the
// farmer and product.
func (c *Console) shipmentFrom(v []string) (*types.Shipment, error) {
	fid, err := c.resolveFarmer(v[0])
	if err != nil {
		return nil, err
	}
	p, err := c.resolveProduct(v[1])
	if err != nil {
		return nil, err
	}
	date, err := time.Parse(types.DateLayout, v[3])
	if err != nil {
		return nil, err
	}
	return &types.Shipment{
		FarmerID: fid, ProductID: p.ID, Quantity: number(v[2]), Date: date, Status: v[4], Notes: v[5],
	}, nil
}

func (c *Console) resolveFarmer(s string) (string, error) {
	return ResolveFarmer(c.store, s)
}

func (c *Console) resolveProduct(s string) (*types.Product, error) {
	return ResolveProduct(c.store, s)
}

func (c *Console) created(entity, id string, err error) error {
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Added %s %s.\n", entity, id)
	return nil
}

func (c *Console) updated(entity, id string, err error) error {
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Updated %s %s.\n", entity, id)
	return nil
}

// displayRef shows a resolvable name, or the raw ID of a deleted record.
func displayRef(name, id string) string {
	if name == report.Deleted {
		return id
	}
	return name
}

func changed(old, next string) *string {
	if old == next {
		return nil
	}
	return &next
}

func ptr[T any](v T) *T { return &v }

// number parses input already accepted by a numeric check.
func number(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("must be a number")
	}
	return v, nil
}

func nonNegative(s string) error {
	v, err := parseNumber(s)
	if err != nil {
		return err
	}
	if v < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func positive(s string) error {
	v, err := parseNumber(s)
	if err != nil {
		return err
	}
	if v <= 0 {
		return errors.New("must be greater than zero")
	}
	return nil
}

func validDate(s string) error {
	if _, err := time.Parse(types.DateLayout, s); err != nil {
		return errors.New("must be a date like 2006-01-02")
	}
	return nil
}

func validStatus(s string) error {
	if !types.ValidShipmentStatus(s) {
		return fmt.Errorf("must be one of %s", strings.Join(types.ShipmentStatuses, ", "))
	}
	return nil
}
