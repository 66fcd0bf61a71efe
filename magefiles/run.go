//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Demo runs the Vulkan-backed demo: builds assets/shaders (if any exist)
// then `go run . -backend=vulkan`.
func (Run) Demo() error {
	if err := buildShaders(); err != nil {
		return err
	}
	fmt.Println("running demo (vulkan backend)...")
	_, err := executeCmd("go", withArgs("run", ".", "-backend=vulkan"), withStream())
	return err
}

// DemoNull runs the demo against the headless null backend, for machines
// without a GPU or Vulkan loader.
func (Run) DemoNull() error {
	fmt.Println("running demo (null backend)...")
	_, err := executeCmd("go", withArgs("run", ".", "-backend=null"), withStream())
	return err
}
