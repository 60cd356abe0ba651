//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Container image constants.
const (
	dockerImageName = "shipmgr"
	dockerImageTag  = "latest"
	dockerfileDir   = "magefiles"
)

// runtimes are the container CLIs tried in order.
var runtimes = []string{"podman", "docker"}

// containerRuntime picks the first runtime on PATH whose "info" command
// succeeds, or returns "" if none does.
func containerRuntime() string {
	for _, name := range runtimes {
		path, err := exec.LookPath(name)
		if err != nil {
			continue
		}
		if err := exec.Command(path, "info").Run(); err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: skipping %s: %v\n", name, err)
			continue
		}
		return path
	}
	return ""
}

// imageRef returns the full image reference (name:tag).
func imageRef() string {
	return dockerImageName + ":" + dockerImageTag
}

// Image builds the container image from magefiles/Dockerfile. The build
// context is the repo root.
func Image() error {
	rt := containerRuntime()
	if rt == "" {
		return fmt.Errorf("no usable container runtime (tried %s)", strings.Join(runtimes, ", "))
	}
	fmt.Fprintf(os.Stderr, "Building %s with %s...\n", imageRef(), filepath.Base(rt))
	args := []string{"build", "-t", imageRef(), "-f", filepath.Join(dockerfileDir, "Dockerfile")}
	if v := version(); v != "" {
		args = append(args, "--build-arg", "VERSION="+v)
	}
	cmd := exec.Command(rt, append(args, ".")...)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// ImageClean removes the container image if present.
func ImageClean() {
	rt := containerRuntime()
	if rt == "" {
		return
	}
	fmt.Fprintf(os.Stderr, "Removing %s...\n", imageRef())
	_ = exec.Command(rt, "rmi", imageRef()).Run()
}
