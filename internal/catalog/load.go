package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

//go:embed default.yaml
var defaultYAML []byte

// catalogFile is the on-disk shape of a catalog document.
type catalogFile struct {
	Assets []Asset `yaml:"assets"`
}

// Load reads a catalog YAML file, validates it against the embedded CUE
// schema, and builds a Catalog from it.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(path, data)
}

// Parse validates and decodes catalog YAML. The filename is used only for
// error positions.
func Parse(filename string, data []byte) (*Catalog, error) {
	if err := validateSchema(filename, data); err != nil {
		return nil, err
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	return New(file.Assets)
}

// Default returns the built-in catalog. The embedded document is validated
// once; a broken build is a programmer error.
var Default = sync.OnceValue(func() *Catalog {
	c, err := Parse("default.yaml", defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog invalid: %v", err))
	}
	return c
})

// validateSchema unifies the document with the embedded schema and checks
// that the result is concrete and consistent.
func validateSchema(filename string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compiling catalog schema: %w", err)
	}

	doc, err := cueyaml.Extract(filename, data)
	if err != nil {
		return fmt.Errorf("parsing catalog yaml: %w", err)
	}
	value := ctx.BuildFile(doc)
	if err := value.Err(); err != nil {
		return fmt.Errorf("building catalog document: %w", err)
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("catalog does not match schema: %w", err)
	}
	return nil
}
