package templates

import (
	"fmt"
	"strings"
)

// printWidth is the line length above which an import is split over several
// lines, matching the prettier default used by NestJS projects.
const printWidth = 80

// ImportManager collects named TypeScript imports and renders them
// de-duplicated. Modules keep first-seen order and symbols keep insertion
// order, so output is deterministic.
type ImportManager struct {
	modules []string
	symbols map[string][]string
}

// NewImportManager creates a new import manager
func NewImportManager() *ImportManager {
	return &ImportManager{
		symbols: make(map[string][]string),
	}
}

// Add registers named imports from a module specifier
func (im *ImportManager) Add(module string, symbols ...string) {
	if module == "" {
		return
	}
	if _, ok := im.symbols[module]; !ok {
		im.modules = append(im.modules, module)
		im.symbols[module] = nil
	}
	for _, sym := range symbols {
		if sym != "" && !im.Has(module, sym) {
			im.symbols[module] = append(im.symbols[module], sym)
		}
	}
}

// Has reports whether symbol is imported from module
func (im *ImportManager) Has(module, symbol string) bool {
	for _, existing := range im.symbols[module] {
		if existing == symbol {
			return true
		}
	}
	return false
}

// GenerateImports renders one import statement per module
func (im *ImportManager) GenerateImports() string {
	var b strings.Builder
	for _, module := range im.modules {
		syms := im.symbols[module]
		if len(syms) == 0 {
			continue
		}

		line := fmt.Sprintf("import { %s } from '%s';", strings.Join(syms, ", "), module)
		if len(line) <= printWidth {
			b.WriteString(line)
			b.WriteByte('\n')
			continue
		}

		b.WriteString("import {\n")
		for _, sym := range syms {
			b.WriteString("  ")
			b.WriteString(sym)
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "} from '%s';\n", module)
	}
	return b.String()
}
