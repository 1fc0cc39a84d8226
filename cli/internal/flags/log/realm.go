package log

import (
	"context"
	"log/slog"
	"slices"
)

// RealmKey is the attribute the bindings use to name the realm of a record.
const RealmKey = "realm"

// FilterRealms returns a handler that drops records whose realm is not one of realms.
// The realm is the last top-level RealmKey attribute, either bound through WithAttrs or on the record.
// Records without a realm are passed on.
func FilterRealms(next slog.Handler, realms ...string) slog.Handler {
	return &realmFilter{next: next, realms: realms}
}

type realmFilter struct {
	next    slog.Handler
	realms  []string
	realm   string
	grouped bool
}

func (h *realmFilter) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *realmFilter) Handle(ctx context.Context, record slog.Record) error {
	realm := h.realm
	if !h.grouped {
		record.Attrs(func(attr slog.Attr) bool {
			if attr.Key == RealmKey {
				realm = attr.Value.String()
			}
			return true
		})
	}
	if realm != "" && !slices.Contains(h.realms, realm) {
		return nil
	}
	return h.next.Handle(ctx, record)
}

func (h *realmFilter) WithAttrs(attrs []slog.Attr) slog.Handler {
	filter := *h
	filter.next = h.next.WithAttrs(attrs)
	if !h.grouped {
		for _, attr := range attrs {
			if attr.Key == RealmKey {
				filter.realm = attr.Value.String()
			}
		}
	}
	return &filter
}

func (h *realmFilter) WithGroup(name string) slog.Handler {
	filter := *h
	filter.next = h.next.WithGroup(name)
	filter.grouped = filter.grouped || name != ""
	return &filter
}
