//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

const shaderDir = "assets/shaders"

// buildShaders compiles every GLSL shader under assets/shaders to SPIR-V
// via glslc, inferring the shader stage from the file's extension rather
// than a hardcoded builtin-shader list: CreateShaderFromBytecode/
// CreateShaderFromSource accept arbitrary caller-supplied shaders, so there
// is no fixed material/skybox/UI set to compile here.
func buildShaders() error {
	vkSDKPath := os.Getenv("VULKAN_SDK")
	if vkSDKPath == "" {
		return fmt.Errorf("VULKAN_SDK is not set")
	}
	glslc := filepath.Join(vkSDKPath, "bin", "glslc")

	sources, err := filepath.Glob(filepath.Join(shaderDir, "*.glsl"))
	if err != nil {
		return fmt.Errorf("glob %s: %w", shaderDir, err)
	}
	if len(sources) == 0 {
		fmt.Printf("no shaders found under %s, nothing to build\n", shaderDir)
		return nil
	}

	for _, src := range sources {
		stage, err := shaderStage(src)
		if err != nil {
			return err
		}
		out := strings.TrimSuffix(src, ".glsl") + ".spv"
		fmt.Printf("compiling %s (%s)\n", src, stage)
		if _, err := executeCmd(glslc, withArgs(fmt.Sprintf("-fshader-stage=%s", stage), src, "-o", out), withStream()); err != nil {
			return err
		}
	}
	return nil
}

// shaderStage infers glslc's -fshader-stage value from the filename's
// stage tag, e.g. "triangle.vert.glsl" -> "vert".
func shaderStage(path string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(path), ".glsl")
	ext := filepath.Ext(base)
	switch ext {
	case ".vert", ".frag", ".comp", ".geom", ".tesc", ".tese":
		return ext[1:], nil
	default:
		return "", fmt.Errorf("%s: cannot infer shader stage from name (want *.vert.glsl, *.frag.glsl, *.comp.glsl, ...)", path)
	}
}

// Shaders compiles assets/shaders/*.glsl to SPIR-V via glslc.
func (Build) Shaders() error {
	return buildShaders()
}

// Demo builds the demo binary in main.go.
func (Build) Demo() error {
	fmt.Println("building demo...")
	_, err := executeCmd("go", withArgs("build", "-o", "bin/ral-demo", "."), withStream())
	return err
}
