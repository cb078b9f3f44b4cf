package handlers

import (
	"context"
	"sort"

	"github.com/example/mataam/internal/models"
	"github.com/example/mataam/internal/rpc"
)

func settingKey(key string) string {
	return "settings:" + key
}

// SettingsHandler manages site content stored as key-value settings. Keys
// without a stored value fall back to the configured defaults.
type SettingsHandler struct {
	deps Deps
}

func NewSettingsHandler(d Deps) *SettingsHandler {
	return &SettingsHandler{deps: d}
}

func (h *SettingsHandler) Register(r *rpc.Router) {
	rpc.Query(r, "settings.get", h.get, rpc.Validate("required"))
	rpc.Query(r, "settings.list", h.list, rpc.AdminOnly())
	rpc.Mutation(r, "settings.set", h.set, rpc.AdminOnly())
}

type setSettingInput struct {
	Key   string `json:"key" validate:"required,max=100"`
	Value string `json:"value"`
}

func (h *SettingsHandler) get(ctx context.Context, _ rpc.Caller, key string) (any, error) {
	setting, err := cached(ctx, h.deps, settingKey(key), func() (*models.Setting, error) {
		return h.deps.Store.GetSetting(ctx, key)
	})
	if err != nil {
		return nil, err
	}
	if setting != nil {
		return setting, nil
	}
	if value, ok := h.deps.SettingsDefaults[key]; ok {
		return &models.Setting{Key: key, Value: value}, nil
	}
	return nil, nil
}

func (h *SettingsHandler) list(ctx context.Context, _ rpc.Caller, _ rpc.Empty) (any, error) {
	stored, err := h.deps.Store.ListSettings(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(stored))
	for _, s := range stored {
		seen[s.Key] = true
	}
	for key, value := range h.deps.SettingsDefaults {
		if !seen[key] {
			stored = append(stored, models.Setting{Key: key, Value: value})
		}
	}
	sort.Slice(stored, func(i, j int) bool { return stored[i].Key < stored[j].Key })
	return stored, nil
}

func (h *SettingsHandler) set(ctx context.Context, _ rpc.Caller, in setSettingInput) (any, error) {
	if err := h.deps.Store.SetSetting(ctx, in.Key, in.Value); err != nil {
		return nil, err
	}
	invalidate(ctx, h.deps, settingKey(in.Key))
	return h.deps.Store.GetSetting(ctx, in.Key)
}
