package console

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

// ResolveFarmer returns the ID of the farmer whose ID is ref or whose name
// matches ref ignoring case.
func ResolveFarmer(store types.Store, ref string) (string, error) {
	list, err := store.Farmers().List(types.ListOptions{})
	if err != nil {
		return "", err
	}
	for _, f := range list {
		if f.ID == ref {
			return f.ID, nil
		}
	}
	for _, f := range list {
		if strings.EqualFold(f.Name, ref) {
			return f.ID, nil
		}
	}
	return "", fmt.Errorf("farmer %q: %w", ref, types.ErrNotFound)
}

// ResolveProduct returns the product whose ID is ref or whose name matches
// ref ignoring case.
func ResolveProduct(store types.Store, ref string) (*types.Product, error) {
	list, err := store.Products().List(types.ListOptions{})
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		if p.ID == ref {
			return p, nil
		}
	}
	for _, p := range list {
		if strings.EqualFold(p.Name, ref) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("product %q: %w", ref, types.ErrNotFound)
}
