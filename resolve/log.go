package resolve

import (
	"fmt"
	"log/slog"
)

// slogType wraps a Type as a slog.LogValuer so that renderings are only
// computed when the record is actually kept
func slogType(t *Type) slog.LogValuer { return typeLogValuer{t} }

type typeLogValuer struct{ t *Type }

func (l typeLogValuer) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("str", l.t.String()),
		slog.String("identity", string(l.t.Identity())),
		slog.String("hash", fmt.Sprintf("%x", l.t.Hash())),
	)
}
