package app

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/vk/framegraph/internal/config"
	"github.com/vk/framegraph/internal/fsutil"
	"github.com/vk/framegraph/internal/hcl"
	"github.com/vk/framegraph/internal/yamlcfg"
)

// newLoader picks the patch format from path: a file by its extension, a
// directory by the patch files it holds. Mixing formats in one directory is
// an error.
func newLoader(path string, overrides config.Settings) (config.Loader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing patch path %s: %w", path, err)
	}

	var isHCL, isYAML bool
	if info.IsDir() {
		hclFiles, err := fsutil.FindFiles([]string{path}, hcl.Extension)
		if err != nil {
			return nil, err
		}
		yamlFiles, err := fsutil.FindFiles([]string{path}, yamlcfg.Extensions...)
		if err != nil {
			return nil, err
		}
		isHCL, isYAML = len(hclFiles) > 0, len(yamlFiles) > 0
	} else {
		ext := filepath.Ext(path)
		isHCL, isYAML = ext == hcl.Extension, slices.Contains(yamlcfg.Extensions, ext)
	}

	switch {
	case isHCL && isYAML:
		return nil, fmt.Errorf("%s mixes HCL and YAML patches", path)
	case isHCL:
		return hcl.NewLoader(hcl.WithOverrides(overrides)), nil
	case isYAML:
		return yamlcfg.NewLoader(yamlcfg.WithOverrides(overrides)), nil
	}
	return nil, fmt.Errorf("no patch files (%s, %v) found at %s", hcl.Extension, yamlcfg.Extensions, path)
}
