// Package rules implements the per-transaction rule engine (spec.md §4.4):
// six canonical native evaluators keyed by pattern type, plus an optional
// expr-lang condition that can augment or gate a rule.
package rules

import (
	"fmt"
	"sync"

	"github.com/banking/aml-core/internal/domain"
	"github.com/banking/aml-core/internal/metrics"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/google/uuid"
)

// Evaluator produces zero or one DetectedPattern for a transaction under a
// single rule. Evaluator panics are recovered by Engine.Evaluate and
// counted as errors, per §7 ("Rule-evaluator exceptions are contained
// per-rule").
type Evaluator func(tx domain.Transaction, ctx domain.CustomerContext, rule domain.Rule) (*domain.DetectedPattern, bool)

// Engine iterates active rules and applies the native evaluator keyed by
// the rule's pattern type, or the optional expr-lang condition.
type Engine struct {
	evaluators map[domain.PatternType]Evaluator
	metrics    *metrics.Registry

	mu       sync.Mutex
	compiled map[string]*vm.Program // rule_id -> compiled condition
}

// NewEngine constructs an Engine with the six canonical evaluators
// registered.
func NewEngine(reg *metrics.Registry) *Engine {
	e := &Engine{
		evaluators: make(map[domain.PatternType]Evaluator),
		metrics:    reg,
		compiled:   make(map[string]*vm.Program),
	}
	e.evaluators[domain.PatternStructuring] = evaluateStructuring
	e.evaluators[domain.PatternVelocitySpike] = evaluateVelocitySpike
	e.evaluators[domain.PatternRapidMovement] = evaluateRapidMovement
	e.evaluators[domain.PatternGeographic] = evaluateGeographic
	e.evaluators[domain.PatternDormantActivate] = evaluateDormantActivation
	e.evaluators[domain.PatternAmountAnomaly] = evaluateAmountAnomaly
	return e
}

// Evaluate runs every active rule against a transaction, returning every
// DetectedPattern produced. A rule whose native evaluator panics, or whose
// expr-lang condition fails to compile/run, is skipped and counted;
// evaluation of remaining rules continues (§7).
func (e *Engine) Evaluate(tx domain.Transaction, ctx domain.CustomerContext, activeRules []domain.Rule) []domain.DetectedPattern {
	var out []domain.DetectedPattern
	for _, rule := range activeRules {
		pattern := e.evaluateOne(tx, ctx, rule)
		if pattern != nil {
			out = append(out, *pattern)
		}
	}
	return out
}

func (e *Engine) evaluateOne(tx domain.Transaction, ctx domain.CustomerContext, rule domain.Rule) (result *domain.DetectedPattern) {
	defer func() {
		if r := recover(); r != nil {
			if e.metrics != nil {
				e.metrics.RuleErrors.WithLabelValues(rule.Code).Inc()
			}
			result = nil
		}
	}()

	if e.metrics != nil {
		e.metrics.RuleEvaluations.WithLabelValues(rule.Code).Inc()
	}

	if rule.Condition != "" {
		matched, err := e.evalCondition(rule, tx, ctx)
		if err != nil {
			if e.metrics != nil {
				e.metrics.RuleErrors.WithLabelValues(rule.Code).Inc()
			}
			return nil
		}
		if !matched {
			return nil
		}
	}

	evaluator, ok := e.evaluators[rule.PatternType]
	if !ok {
		return nil
	}
	pattern, matched := evaluator(tx, ctx, rule)
	if !matched {
		return nil
	}
	if e.metrics != nil {
		e.metrics.PatternsDetected.WithLabelValues(string(rule.PatternType)).Inc()
	}
	return pattern
}

func (e *Engine) evalCondition(rule domain.Rule, tx domain.Transaction, ctx domain.CustomerContext) (bool, error) {
	e.mu.Lock()
	program, ok := e.compiled[rule.RuleID+":"+fmt.Sprint(rule.Version)]
	e.mu.Unlock()

	env := conditionEnv(tx, ctx)
	if !ok {
		var err error
		program, err = expr.Compile(rule.Condition, expr.Env(env), expr.AsBool())
		if err != nil {
			return false, err
		}
		e.mu.Lock()
		e.compiled[rule.RuleID+":"+fmt.Sprint(rule.Version)] = program
		e.mu.Unlock()
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return false, err
	}
	matched, _ := out.(bool)
	return matched, nil
}

func conditionEnv(tx domain.Transaction, ctx domain.CustomerContext) map[string]any {
	return map[string]any{
		"amount":            tx.Amount.Amount,
		"currency":          tx.Amount.Currency,
		"direction":         string(tx.Direction),
		"channel":           tx.Channel,
		"country_code":      tx.CountryCode,
		"is_cash":           tx.IsCash,
		"current_velocity":  ctx.CurrentVelocity,
		"baseline_velocity": ctx.BaselineVelocity,
	}
}

func newPattern(patternType domain.PatternType, severity domain.Severity, primaryEntity uuid.UUID, txIDs []uuid.UUID, confidence float64, rule domain.Rule, indicators []string, details map[string]any) *domain.DetectedPattern {
	return &domain.DetectedPattern{
		PatternID:       uuid.New(),
		PatternType:     patternType,
		Severity:        severity,
		Status:          domain.PatternDetected,
		PrimaryEntityID: primaryEntity,
		TransactionIDs:  txIDs,
		Confidence:      confidence,
		Rule:            domain.RuleVersionRef{RuleID: rule.RuleID, Version: rule.Version},
		Details:         details,
		Indicators:      indicators,
	}
}

func paramOr(rule domain.Rule, key string, def float64) float64 {
	if v, ok := rule.Parameters[key]; ok {
		return v
	}
	return def
}
