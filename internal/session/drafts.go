package session

import "go-pos-client/internal/storage"

const draftPrefix = "autosave_"

// Drafts persists half-filled forms so a closed window doesn't lose work.
// Each form saves under autosave_<key>, keyed by form identity.
type Drafts struct {
	store *storage.Store
}

func NewDrafts(store *storage.Store) *Drafts {
	return &Drafts{store: store}
}

// Save keeps the draft only when at least one field holds a value; saving an
// all-empty form would just clobber a useful earlier draft.
func (d *Drafts) Save(key string, fields map[string]any) error {
	hasValue := false
	for _, v := range fields {
		switch t := v.(type) {
		case nil:
			continue
		case string:
			if t != "" {
				hasValue = true
			}
		default:
			hasValue = true
		}
		if hasValue {
			break
		}
	}
	if !hasValue {
		return nil
	}
	return d.store.SetJSON(draftPrefix+key, fields)
}

// Load returns the saved draft, or false when none exists.
func (d *Drafts) Load(key string) (map[string]any, bool) {
	var fields map[string]any
	if err := d.store.GetJSON(draftPrefix+key, &fields); err != nil {
		return nil, false
	}
	return fields, true
}

func (d *Drafts) Clear(key string) error {
	return d.store.Delete(draftPrefix + key)
}
