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
	"fmt"
	"os"
	"path/filepath"
)

// Names of the files expected inside the build-files directory.
const (
	templateDirName = "app-debug"
	apkToolJarName  = "apktool.jar"
	signerJarName   = "uber-apk-signer-1.2.1.jar"
)

// A Stage is a temporary working copy of the archive template.  Each font
// gets its own stage, so a failed run leaves no traces in the template.
type Stage struct {
	// APKDir is the staged copy of the archive template directory.
	APKDir string

	// APKToolPath and SignerPath locate the packaging tool archives
	// inside the build-files directory.
	APKToolPath string
	SignerPath  string

	tmpDir string
}

// NewStage copies the archive template from the build-files directory
// into a fresh temporary directory.  Close removes the copy.
func NewStage(buildFiles string) (*Stage, error) {
	templateDir := filepath.Join(buildFiles, templateDirName)
	info, err := os.Stat(templateDir)
	if err != nil {
		return nil, fmt.Errorf("bundle: archive template not found: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("bundle: archive template is not a directory: %s", templateDir)
	}

	tmpDir, err := os.MkdirTemp("", "fontpack-*")
	if err != nil {
		return nil, err
	}

	apkDir := filepath.Join(tmpDir, templateDirName)
	if err := os.CopyFS(apkDir, os.DirFS(templateDir)); err != nil {
		os.RemoveAll(tmpDir)
		return nil, err
	}

	return &Stage{
		APKDir:      apkDir,
		APKToolPath: filepath.Join(buildFiles, apkToolJarName),
		SignerPath:  filepath.Join(buildFiles, signerJarName),
		tmpDir:      tmpDir,
	}, nil
}

// Close removes the staged copy.
func (s *Stage) Close() error {
	return os.RemoveAll(s.tmpDir)
}
