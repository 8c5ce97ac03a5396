// seehuhn.de/go/fontpack - a tool for packaging fonts into device bundles
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package bundle

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// javaPath is the name used to invoke the Java runtime.
const javaPath = "java"

// A Runner executes an external command in a working directory and
// returns its combined output.  It is injected into the jar tools so that
// the packaging steps can be tested without spawning processes.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands via os/exec.
type ExecRunner struct {
	Log logrus.FieldLogger
}

// Run implements the Runner interface.
func (r ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	if r.Log != nil {
		r.Log.WithField("dir", dir).
			Debugf("running command: %s %s", name, strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("bundle: %s failed: %s", name, msg)
	}
	if r.Log != nil && stdout.Len() > 0 {
		r.Log.Debug(stdout.String())
	}
	return stdout.Bytes(), nil
}

// JavaCheck verifies that a Java runtime is available.
func JavaCheck(ctx context.Context, r Runner) error {
	_, err := r.Run(ctx, "", javaPath, "--version")
	if err != nil {
		return fmt.Errorf("bundle: java not found, install java before continuing: %w", err)
	}
	return nil
}

// A JarTool invokes a Java archive through the injected runner.
type JarTool struct {
	Path   string
	Runner Runner
}

func (t *JarTool) run(ctx context.Context, workDir string, args ...string) error {
	full := append([]string{"-jar", t.Path}, args...)
	_, err := t.Runner.Run(ctx, workDir, javaPath, full...)
	return err
}

// APKTool builds an archive directory into an installable package.
// https://apktool.org/
type APKTool struct {
	JarTool
}

// NewAPKTool returns an APKTool using the jar file from the stage.
func NewAPKTool(s *Stage, r Runner) (*APKTool, error) {
	path, err := absJar(s.APKToolPath)
	if err != nil {
		return nil, err
	}
	return &APKTool{JarTool{Path: path, Runner: r}}, nil
}

// Build compiles the archive directory into outputPath.
func (t *APKTool) Build(ctx context.Context, apkDir, outputPath, workDir string) error {
	return t.run(ctx, workDir, "b", apkDir, "-o", outputPath)
}

// APKSigner signs a built package in place.
// https://github.com/patrickfav/uber-apk-signer
type APKSigner struct {
	JarTool
}

// NewAPKSigner returns an APKSigner using the jar file from the stage.
func NewAPKSigner(s *Stage, r Runner) (*APKSigner, error) {
	path, err := absJar(s.SignerPath)
	if err != nil {
		return nil, err
	}
	return &APKSigner{JarTool{Path: path, Runner: r}}, nil
}

// Sign signs the package at apkPath, overwriting it.
func (t *APKSigner) Sign(ctx context.Context, apkPath, workDir string) error {
	return t.run(ctx, workDir, "--overwrite", "-a", apkPath)
}

func absJar(path string) (string, error) {
	if filepath.Ext(path) != ".jar" {
		return "", fmt.Errorf("bundle: not a jar file: %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("bundle: missing jar file: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return abs, nil
}
