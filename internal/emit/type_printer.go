package emit

import "github.com/occ2swift/occ/internal/types"

// typeString renders a SwiftType the way §4.1's grammar spells it. The
// type's own String() already produces that spelling (it doubles as the
// overload resolver's cache key, §4.4), so this only adds the one
// idiom choice emission owns: an empty tuple prints as Void in source
// position, even though Void and () compare equal as values.
func (p *Printer) typeString(t *types.SwiftType) string {
	if t == nil {
		return "<???>"
	}
	if t.IsVoid() {
		return "Void"
	}
	return t.String()
}
