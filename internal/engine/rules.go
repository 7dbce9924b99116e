package engine

import (
	"geofence-alert-backend/internal/alert"
	"geofence-alert-backend/internal/snapshot"
)

// EvaluateRule decides whether a containment transition breaches the
// geofence's rule type. It is a pure function over (rule, was, is):
//
//	FORBIDDEN  out->in  violation_enter
//	FORBIDDEN  in->out  none
//	STAY_IN    in->out  violation_exit
//	STAY_IN    out->in  none
//	STANDARD   out->in  violation_enter
//	STANDARD   in->out  violation_exit
//	any        no change  none
//
// An unrecognized rule type never produces a violation.
func EvaluateRule(rule snapshot.RuleType, wasInside, isInside bool) (alert.Kind, bool) {
	if wasInside == isInside {
		return "", false
	}

	entered := isInside
	switch rule {
	case snapshot.RuleForbidden:
		if entered {
			return alert.KindEnter, true
		}
	case snapshot.RuleStayIn:
		if !entered {
			return alert.KindExit, true
		}
	case snapshot.RuleStandard:
		if entered {
			return alert.KindEnter, true
		}
		return alert.KindExit, true
	}
	return "", false
}
