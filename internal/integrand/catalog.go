package integrand

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// CatalogEntry is one integrand declared in a CUE catalog.
type CatalogEntry struct {
	Name        string
	Kind        string
	Description string
	Params      map[string]float64
	Integrand   Integrand
}

// CatalogError is a catalog problem with its CUE source position.
type CatalogError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CatalogError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// LoadCatalog compiles every .cue file under dir and returns the declared
// integrands sorted by name. Files are unified, so an integrand may be
// split across files. A catalog looks like:
//
//	integrand: quadratic: {
//		kind:         "polynomial"
//		coefficients: [0, 0, 3]
//		description:  "3x^2"
//	}
func LoadCatalog(dir string) ([]CatalogEntry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("catalog directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog path is not a directory: %s", dir)
	}

	files, err := FindCUEFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning catalog directory: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no CUE files found in %s", dir)
	}

	ctx := cuecontext.New()
	var value cue.Value
	for i, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		v := ctx.CompileBytes(data, cue.Filename(path))
		if err := v.Err(); err != nil {
			return nil, formatCUEError(err)
		}
		if i == 0 {
			value = v
		} else {
			value = value.Unify(v)
		}
	}
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	return CompileCatalog(value)
}

// CompileCatalog extracts integrand declarations from a built CUE value.
func CompileCatalog(v cue.Value) ([]CatalogEntry, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	root := v.LookupPath(cue.ParsePath("integrand"))
	if !root.Exists() {
		return nil, &CatalogError{Field: "integrand", Message: "no integrand declarations found", Pos: v.Pos()}
	}

	iter, err := root.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var entries []CatalogEntry
	for iter.Next() {
		entry, err := compileEntry(iter.Label(), iter.Value())
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return nil, &CatalogError{Field: "integrand", Message: "no integrand declarations found", Pos: root.Pos()}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// RegisterCatalog adds every entry to r, stopping at the first conflict.
func RegisterCatalog(r *Registry, entries []CatalogEntry) error {
	for _, e := range entries {
		if err := r.Register(e.Name, e.Description, e.Integrand); err != nil {
			return err
		}
	}
	return nil
}

func compileEntry(name string, v cue.Value) (CatalogEntry, error) {
	entry := CatalogEntry{Name: name, Params: map[string]float64{}}

	kindVal := v.LookupPath(cue.ParsePath("kind"))
	if !kindVal.Exists() {
		return entry, &CatalogError{Field: name + ".kind", Message: "kind is required", Pos: v.Pos()}
	}
	kind, err := kindVal.String()
	if err != nil {
		return entry, formatCUEError(err)
	}
	entry.Kind = kind

	if d := v.LookupPath(cue.ParsePath("description")); d.Exists() {
		desc, err := d.String()
		if err != nil {
			return entry, formatCUEError(err)
		}
		entry.Description = desc
	}

	iter, err := v.Fields()
	if err != nil {
		return entry, formatCUEError(err)
	}
	for iter.Next() {
		label := iter.Label()
		switch label {
		case "kind", "description":
			continue
		case "coefficients":
			if normalizeName(kind) != KindPolynomial {
				return entry, &CatalogError{Field: name + "." + label, Message: "coefficients only apply to polynomial", Pos: iter.Value().Pos()}
			}
			coeffs, err := floatList(iter.Value())
			if err != nil {
				return entry, err
			}
			for i, c := range coeffs {
				entry.Params[fmt.Sprintf("c%d", i)] = c
			}
		default:
			f, err := iter.Value().Float64()
			if err != nil {
				return entry, &CatalogError{Field: name + "." + label, Message: "parameter must be a number", Pos: iter.Value().Pos()}
			}
			entry.Params[label] = f
		}
	}

	f, err := New(kind, entry.Params)
	if err != nil {
		return entry, &CatalogError{Field: name, Message: err.Error(), Pos: v.Pos()}
	}
	entry.Integrand = f
	if entry.Description == "" {
		if s, ok := f.(fmt.Stringer); ok {
			entry.Description = s.String()
		}
	}
	return entry, nil
}

func floatList(v cue.Value) ([]float64, error) {
	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var out []float64
	for iter.Next() {
		f, err := iter.Value().Float64()
		if err != nil {
			return nil, &CatalogError{Field: "coefficients", Message: "coefficient must be a number", Pos: iter.Value().Pos()}
		}
		out = append(out, f)
	}
	return out, nil
}

// FindCUEFiles walks dir and returns all .cue file paths in lexical order.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// formatCUEError keeps the first CUE error and its position.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &CatalogError{Field: "cue", Message: first.Error(), Pos: positions[0]}
	}
	return err
}
