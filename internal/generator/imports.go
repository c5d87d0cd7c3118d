package generator

import (
	"fmt"
	"strings"

	"schemagen/internal/shared/observability"
	"schemagen/internal/shared/util"
)

// MaterializeImports consumes the pending-import map after every file has
// been transcribed.
//
// The artifact is one flat file that already contains every emitted
// declaration, so a pending reference whose target was emitted into the same
// artifact is satisfied in place and suppressed. A pending reference whose
// target was never emitted, the zero-field-class case where the name is
// extractable but its block is skipped, materializes as an import line
// pointing at the originating module, so no reference is left dangling.
//
// Pending imports are keyed by the specifier computed from each referencing
// file, so the same name can arrive under several module paths when its
// referrers sit at different directory depths. An identifier may only be
// bound once, so each name is imported under the first path in sorted order
// and suppressed everywhere else.
func MaterializeImports(pending PendingImports, buf *OutputBuffer) []string {
	var lines []string
	imported := make(map[string]bool)
	for _, modulePath := range util.SortedStringKeys(pending) {
		var missing []string
		for _, name := range util.SortedStringSet(pending[modulePath]) {
			if buf.Contains(name) || imported[name] {
				continue
			}
			imported[name] = true
			missing = append(missing, name)
		}
		if len(missing) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("import type { %s } from '%s';", strings.Join(missing, ", "), modulePath))
		observability.ImportsMaterialized.Inc()
	}
	return lines
}
