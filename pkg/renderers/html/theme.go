package html

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// StylesheetAsset is the asset key looked up in theme manifests.
const StylesheetAsset = "contactform.stylesheet"

// themeContext is the template view of a theme selection.
type themeContext struct {
	Name       string
	Variant    string
	Stylesheet string
	CSSVars    string
}

// StaticTheme returns a selector that always answers with manifest, for
// callers that configure a single theme without a registry.
func StaticTheme(manifest *theme.Manifest) theme.ThemeSelector {
	return staticSelector{manifest: manifest}
}

type staticSelector struct {
	manifest *theme.Manifest
}

func (s staticSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if s.manifest == nil {
		return nil, fmt.Errorf("html: no theme manifest configured")
	}
	if name == "" {
		name = s.manifest.Name
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: s.manifest}, nil
}

// buildThemeContext merges variant tokens and assets over the manifest's.
func buildThemeContext(selection *theme.Selection) themeContext {
	if selection == nil {
		return themeContext{}
	}
	ctx := themeContext{Name: selection.Theme, Variant: selection.Variant}
	manifest := selection.Manifest
	if manifest == nil {
		return ctx
	}

	tokens := make(map[string]string, len(manifest.Tokens))
	for key, value := range manifest.Tokens {
		tokens[key] = value
	}
	prefix := manifest.Assets.Prefix
	stylesheet := manifest.Assets.Files[StylesheetAsset]

	if variant, ok := manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			tokens[key] = value
		}
		if file := variant.Assets.Files[StylesheetAsset]; file != "" {
			stylesheet = file
		}
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}

	ctx.Stylesheet = assetURL(prefix, stylesheet)
	ctx.CSSVars = cssVars(tokens)
	return ctx
}

func assetURL(prefix, file string) string {
	file = strings.TrimSpace(file)
	if file == "" {
		return ""
	}
	if strings.HasPrefix(file, "/") || strings.Contains(file, "://") || prefix == "" {
		return file
	}
	return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
}

func cssVars(tokens map[string]string) string {
	if len(tokens) == 0 {
		return ""
	}
	keys := make([]string, 0, len(tokens))
	for key := range tokens {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		name := key
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		fmt.Fprintf(&b, "%s: %s; ", name, tokens[key])
	}
	return strings.TrimSpace(b.String())
}
