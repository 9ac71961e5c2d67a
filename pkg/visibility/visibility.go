package visibility

import (
	"fmt"

	"github.com/angelmondragon/ecotech-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/ecotech-backend/pkg/errors"
)

// transitions lists the lifecycle moves an entry may make. Repeating the
// current state is always allowed and is a no-op.
var transitions = map[enums.EntryVisibility][]enums.EntryVisibility{
	enums.EntryVisibilityActive: {enums.EntryVisibilityHidden, enums.EntryVisibilityPurged},
	enums.EntryVisibilityHidden: {enums.EntryVisibilityActive, enums.EntryVisibilityPurged},
}

// EnsureTransition validates moving an entry from one lifecycle state to another.
func EnsureTransition(from, to enums.EntryVisibility) error {
	if !from.IsValid() || !to.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown visibility transition %q -> %q", from, to))
	}
	if from == enums.EntryVisibilityPurged {
		return pkgerrors.New(pkgerrors.CodeNotFound, "entry not found")
	}
	if from == to {
		return nil
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("entry cannot move from %s to %s", from, to))
}

