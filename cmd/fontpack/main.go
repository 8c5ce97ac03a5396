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

// Fontpack converts fonts into device-installable bundles.  Each input
// font is sanitized, subset, saved into the archive template together
// with its binary descriptor, and then built and signed using the
// external jar tools.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"seehuhn.de/go/fontpack/bundle"
	"seehuhn.de/go/fontpack/mutate"
	"seehuhn.de/go/fontpack/resolve"
	"seehuhn.de/go/fontpack/sfnt"
)

var args struct {
	Output     string `short:"o" type:"existingdir" help:"Output directory for the generated bundles. Defaults to the current directory."`
	BuildFiles string `name:"build-files" default:"apk_build_files" type:"path" help:"Directory holding the archive template and the packaging jar tools."`
	LogFile    string `name:"log-file" default:"log_file.log" help:"File receiving the debug log."`

	Input string `arg:"" name:"input" type:"path" help:"Input path, a font file or a directory containing fonts. TTF, OTF, WOFF and WOFF2 files are supported."`
}

var supportedExtensions = []string{".ttf", ".otf", ".woff", ".woff2"}

func main() {
	kong.Parse(&args)

	log, closeLog, err := setupLogging(args.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(log); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func run(log *logrus.Logger) error {
	ctx := context.Background()
	runner := bundle.ExecRunner{Log: log}

	if err := bundle.JavaCheck(ctx, runner); err != nil {
		return err
	}

	files, err := filesToProcess(args.Input)
	if err != nil {
		return err
	}

	outputDir := args.Output
	if outputDir == "" {
		outputDir, err = os.Getwd()
		if err != nil {
			return err
		}
	}

	log.Infof("Input path: %s", args.Input)
	log.Infof("Output path: %s", outputDir)
	log.Infof("Found %d compatible font files: %v", len(files), files)

	for i, fontPath := range files {
		log.Infof("Processing font [%d/%d]: %s", i+1, len(files), fontPath)
		err := process(ctx, log, runner, fontPath, outputDir)
		if err != nil {
			// a failed font is skipped, the batch continues
			log.WithField("font", fontPath).Error(err)
		}
	}
	return nil
}

// process runs the full pipeline for a single font: mutate, save,
// encode the descriptor, fill the template and build and sign the bundle.
func process(ctx context.Context, log *logrus.Logger, runner bundle.Runner, fontPath, outputDir string) error {
	f, err := sfnt.Open(fontPath)
	if err != nil {
		return err
	}

	baseName := strings.TrimSuffix(filepath.Base(fontPath), filepath.Ext(fontPath))

	if err := mutate.SanitizeNames(f, baseName, log); err != nil {
		return err
	}
	if err := mutate.Subset(f, log); err != nil {
		return err
	}

	family := resolve.FamilyName(f)
	subfamily := resolve.SubfamilyName(f)
	fullName := combinedName(family, subfamily)

	log.Info("Preparing build files")
	stage, err := bundle.NewStage(args.BuildFiles)
	if err != nil {
		return err
	}
	defer stage.Close()

	log.Info("Setting files and values")
	b := bundle.New(stage.APKDir, log)
	if err := b.SetFontTTF(f); err != nil {
		return err
	}
	if err := b.SetFontData(family, subfamily); err != nil {
		return err
	}
	if err := b.SetFontXML(fullName); err != nil {
		return err
	}
	if err := b.SetManifest(fullName); err != nil {
		return err
	}
	if err := b.SetStrings(fullName); err != nil {
		return err
	}
	if !b.Readiness.Complete() {
		return fmt.Errorf("bundle is not ready to compile: %+v", b.Readiness)
	}

	log.Info("Building apk")
	apktool, err := bundle.NewAPKTool(stage, runner)
	if err != nil {
		return err
	}
	apkPath := uniqueAPKPath(baseName, outputDir)
	if err := apktool.Build(ctx, stage.APKDir, apkPath, outputDir); err != nil {
		return err
	}

	log.Info("Signing apk")
	signer, err := bundle.NewAPKSigner(stage, runner)
	if err != nil {
		return err
	}
	if err := signer.Sign(ctx, apkPath, outputDir); err != nil {
		return err
	}

	log.Infof("Saved apk to: %s", apkPath)
	return nil
}

// combinedName joins the family and subfamily names for display, or
// returns the family alone if the two are equal.
func combinedName(family, subfamily string) string {
	if family == subfamily {
		return family
	}
	return family + " - " + subfamily
}

func validFont(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range supportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

func filesToProcess(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !validFont(input) {
			return nil, fmt.Errorf("input path %s is not a compatible file", input)
		}
		return []string{input}, nil
	}

	entries, err := os.ReadDir(input)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !validFont(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(input, entry.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("input path %s does not contain any compatible files", input)
	}
	return files, nil
}

// uniqueAPKPath returns the output path for the bundle, named after the
// font file.  If the path is already taken, a timestamp is appended.
func uniqueAPKPath(baseName, outputDir string) string {
	path := filepath.Join(outputDir, baseName+".apk")
	if _, err := os.Stat(path); err == nil {
		timestamp := time.Now().Format("20060102150405")
		path = filepath.Join(outputDir, baseName+"_"+timestamp+".apk")
	}
	return path
}
