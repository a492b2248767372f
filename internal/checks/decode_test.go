package checks

import (
	"math"
	"testing"

	"github.com/spboyer/pagescore/internal/models"
	"github.com/stretchr/testify/require"
)

func ids(results []models.CheckResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}

func TestDecode_List(t *testing.T) {
	raw := []any{
		map[string]any{
			"id":       "title_length",
			"status":   "pass",
			"label":    "Title length",
			"fix_hint": "Keep titles under 60 characters.",
			"weight":   0.8,
			"details":  map[string]any{"length": 42},
		},
		map[string]any{"id": "meta_description", "status": "warn", "weight": 1},
	}

	results, skipped := Decode(raw)
	require.Empty(t, skipped)
	require.Equal(t, []string{"title_length", "meta_description"}, ids(results))

	first := results[0]
	require.Equal(t, models.StatusPass, first.Status)
	require.Equal(t, "Title length", first.Label)
	require.Equal(t, "Keep titles under 60 characters.", first.FixHint)
	require.Equal(t, 0.8, first.Weight)
	require.Equal(t, map[string]any{"length": 42}, first.Details)

	require.Equal(t, models.StatusWarn, results[1].Status)
	require.Equal(t, 1.0, results[1].Weight)
}

func TestDecode_KeyedCollectionUsesKeyAsID(t *testing.T) {
	raw := map[string]any{
		"b_check": map[string]any{"status": "pass", "weight": 0.5},
		"a_check": map[string]any{"id": "explicit", "status": "fail", "weight": 0.5},
	}

	results, skipped := Decode(raw)
	require.Empty(t, skipped)
	require.Equal(t, []string{"explicit", "b_check"}, ids(results))
}

func TestDecode_MalformedEntriesSkipped(t *testing.T) {
	raw := []any{
		"not a record",
		42,
		nil,
		map[string]any{"status": "pass"},
		map[string]any{"id": "   ", "status": "pass"},
		map[string]any{"id": 7, "status": "pass"},
		map[string]any{"id": "ok", "status": "pass", "weight": 1},
		map[string]any{"id": "ok", "status": "fail", "weight": 1},
	}

	results, skipped := Decode(raw)
	require.Equal(t, []string{"ok"}, ids(results))
	require.Equal(t, models.StatusPass, results[0].Status)
	require.Len(t, skipped, 7)
}

func TestDecode_FieldDefaults(t *testing.T) {
	raw := []any{
		map[string]any{"id": "weight_string", "status": "pass", "weight": "0.9"},
		map[string]any{"id": "weight_bool", "status": "pass", "weight": true},
		map[string]any{"id": "weight_high", "status": "pass", "weight": 3},
		map[string]any{"id": "weight_just_over", "status": "pass", "weight": 1.5},
		map[string]any{"id": "weight_one", "status": "pass", "weight": 1},
		map[string]any{"id": "weight_zero", "status": "pass", "weight": 0},
		map[string]any{"id": "weight_inf", "status": "pass", "weight": math.Inf(1)},
		map[string]any{"id": "weight_negative", "status": "pass", "weight": -1},
		map[string]any{"id": "weight_nan", "status": "pass", "weight": math.NaN()},
		map[string]any{"id": "status_unknown", "status": "skipped", "weight": 1},
		map[string]any{"id": "status_number", "status": 1, "weight": 1},
		map[string]any{"id": "status_missing", "weight": 1},
		map[string]any{"id": "label_number", "status": "pass", "label": 12},
		map[string]any{"id": "details_list", "status": "pass", "details": []any{1, 2}},
		map[string]any{"id": "aliases", "status": "pass", "title": "Alt title", "fix": "Alt fix"},
		map[string]any{"id": "camel", "status": "warn", "fixHint": "Camel fix", "fix": "ignored"},
	}

	results, skipped := Decode(raw)
	require.Empty(t, skipped)
	byID := map[string]models.CheckResult{}
	for _, r := range results {
		byID[r.ID] = r
	}

	require.Equal(t, 0.0, byID["weight_string"].Weight)
	require.Equal(t, 0.0, byID["weight_bool"].Weight)
	require.Equal(t, 0.0, byID["weight_high"].Weight)
	require.Equal(t, 0.0, byID["weight_just_over"].Weight)
	require.Equal(t, 1.0, byID["weight_one"].Weight)
	require.Equal(t, 0.0, byID["weight_zero"].Weight)
	require.Equal(t, 0.0, byID["weight_inf"].Weight)
	require.Equal(t, 0.0, byID["weight_negative"].Weight)
	require.Equal(t, 0.0, byID["weight_nan"].Weight)
	require.Equal(t, models.StatusFail, byID["status_unknown"].Status)
	require.Equal(t, models.StatusFail, byID["status_number"].Status)
	require.Equal(t, models.StatusFail, byID["status_missing"].Status)
	require.Equal(t, "", byID["label_number"].Label)
	require.Nil(t, byID["details_list"].Details)
	require.Equal(t, "Alt title", byID["aliases"].Label)
	require.Equal(t, "Alt fix", byID["aliases"].FixHint)
	require.Equal(t, "Camel fix", byID["camel"].FixHint)
}

func TestDecode_UnsupportedCollection(t *testing.T) {
	results, skipped := Decode("checks")
	require.Empty(t, results)
	require.Len(t, skipped, 1)

	results, skipped = Decode(nil)
	require.Empty(t, results)
	require.Empty(t, skipped)
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	in := []models.CheckResult{
		{ID: "  a  ", Status: "PASS", Weight: 2},
	}
	out, skipped := Normalize(in)
	require.Empty(t, skipped)
	require.Equal(t, "a", out[0].ID)
	require.Equal(t, models.StatusFail, out[0].Status)
	require.Equal(t, 0.0, out[0].Weight)

	require.Equal(t, "  a  ", in[0].ID)
	require.Equal(t, models.CheckStatus("PASS"), in[0].Status)
}

func TestSkipped_String(t *testing.T) {
	require.Equal(t, `entry "x": duplicate id`, Skipped{Index: 1, Key: "x", Reason: "duplicate id"}.String())
	require.Equal(t, "entry 3: missing id", Skipped{Index: 3, Reason: "missing id"}.String())
}
