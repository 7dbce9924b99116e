package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"geofence-alert-backend/internal/alert"
	"geofence-alert-backend/internal/snapshot"
)

func TestEvaluateRule(t *testing.T) {
	testCases := []struct {
		name      string
		rule      snapshot.RuleType
		wasInside bool
		isInside  bool
		expected  alert.Kind
		violated  bool
	}{
		{"forbidden entry fires", snapshot.RuleForbidden, false, true, alert.KindEnter, true},
		{"forbidden exit is ignored", snapshot.RuleForbidden, true, false, "", false},
		{"stay-in exit fires", snapshot.RuleStayIn, true, false, alert.KindExit, true},
		{"stay-in entry is ignored", snapshot.RuleStayIn, false, true, "", false},
		{"standard entry fires", snapshot.RuleStandard, false, true, alert.KindEnter, true},
		{"standard exit fires", snapshot.RuleStandard, true, false, alert.KindExit, true},
		{"forbidden no change inside", snapshot.RuleForbidden, true, true, "", false},
		{"forbidden no change outside", snapshot.RuleForbidden, false, false, "", false},
		{"stay-in no change inside", snapshot.RuleStayIn, true, true, "", false},
		{"standard no change outside", snapshot.RuleStandard, false, false, "", false},
		{"unknown rule type never fires", snapshot.RuleType("WHATEVER"), false, true, "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			kind, violated := EvaluateRule(tc.rule, tc.wasInside, tc.isInside)
			assert.Equal(t, tc.violated, violated)
			assert.Equal(t, tc.expected, kind)
		})
	}
}
