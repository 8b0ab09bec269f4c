// Package template provides the static catalog of research configuration
// templates. The catalog is parsed once from the embedded configs/templates.yaml.
package template

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/marketsim/abidesgen/configs"
	"github.com/marketsim/abidesgen/internal/agent"
	"github.com/marketsim/abidesgen/internal/compose"
	"github.com/marketsim/abidesgen/internal/errors"
)

// MarketDefaults are a template's recommended market parameters.
// Zero values mean the template has no recommendation for that field.
type MarketDefaults struct {
	StartingCash int64  `yaml:"starting_cash"`
	Symbol       string `yaml:"symbol"`
	Date         string `yaml:"date"`
	Open         string `yaml:"open"`
	Close        string `yaml:"close"`
}

// Template is a named baseline agent composition plus recommended defaults.
// Templates are immutable static data, looked up by name.
type Template struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Agents      map[string]int `yaml:"agents"`
	Market      MarketDefaults `yaml:"market"`
}

// Composition returns the template's baseline composition as a fresh value.
func (t Template) Composition() compose.Composition {
	c := make(compose.Composition, len(t.Agents))
	for kind, n := range t.Agents {
		c[agent.Kind(kind)] = n
	}
	return c
}

// TotalAgents returns the template's baseline total agent count
// (trading agents only; the implicit exchange agent is not counted).
func (t Template) TotalAgents() int {
	total := 0
	for _, n := range t.Agents {
		total += n
	}
	return total
}

type catalogFile struct {
	Templates []Template `yaml:"templates"`
}

var (
	ordered []Template
	byName  map[string]Template
)

func init() {
	data, err := configs.Data.ReadFile("templates.yaml")
	if err != nil {
		panic(fmt.Sprintf("template catalog: read embedded templates.yaml: %v", err))
	}
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		panic(fmt.Sprintf("template catalog: parse templates.yaml: %v", err))
	}
	if len(file.Templates) == 0 {
		panic("template catalog: templates.yaml defines no templates")
	}

	byName = make(map[string]Template, len(file.Templates))
	for _, t := range file.Templates {
		if t.Name == "" {
			panic("template catalog: entry with empty name")
		}
		if _, dup := byName[t.Name]; dup {
			panic(fmt.Sprintf("template catalog: duplicate template %q", t.Name))
		}
		for kind := range t.Agents {
			if !agent.Known(agent.Kind(kind)) {
				panic(fmt.Sprintf("template catalog: template %q references unknown kind %q", t.Name, kind))
			}
		}
		byName[t.Name] = t
	}
	ordered = file.Templates
}

// Lookup returns the template with the given name.
// Returns E_UNKNOWN_TEMPLATE if the name is not in the catalog.
func Lookup(name string) (Template, error) {
	t, ok := byName[name]
	if !ok {
		return Template{}, errors.NewWithDetails(errors.EUnknownTemplate,
			fmt.Sprintf("unknown template %q; available templates: %s", name, strings.Join(Names(), ", ")),
			map[string]string{"template": name})
	}
	return t, nil
}

// All returns every template in catalog order.
func All() []Template {
	out := make([]Template, len(ordered))
	copy(out, ordered)
	return out
}

// Names returns the template names in catalog order.
func Names() []string {
	names := make([]string, len(ordered))
	for i, t := range ordered {
		names[i] = t.Name
	}
	return names
}
