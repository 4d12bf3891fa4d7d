// Package patterns implements the batch graph/statistical detectors run
// over transaction batches: structuring, layering, round-tripping, and
// rapid movement (spec.md §4.5).
package patterns

import (
	"sort"

	"github.com/banking/aml-core/internal/domain"
	"github.com/google/uuid"
)

const maxHops = 10
const minLayerLength = 3
const maxRoundTripStarts = 20

// DetectStructuringBatch evaluates the structuring trigger over every cash
// transaction of a customer within a window, adding the batch-only
// confidence signals: low variance of amounts (+0.2), >50% round-hundreds
// (+0.2), total > 1.5*T (+0.3) (§4.5).
func DetectStructuringBatch(customerID uuid.UUID, txs []domain.Transaction, threshold, minCount float64) *domain.DetectedPattern {
	var below []domain.Transaction
	for _, tx := range txs {
		if !tx.IsCash {
			continue
		}
		amount := float64(tx.Amount.Amount)
		if amount >= 0.8*threshold && amount < threshold {
			below = append(below, tx)
		}
	}
	if float64(len(below)) < minCount {
		return nil
	}

	var total int64
	amounts := make([]float64, len(below))
	roundHundreds := 0
	ids := make([]uuid.UUID, len(below))
	for i, tx := range below {
		total += tx.Amount.Amount
		amounts[i] = float64(tx.Amount.Amount)
		ids[i] = tx.TransactionID
		if tx.Amount.Amount%10000 == 0 { // round to the nearest $100 in cents
			roundHundreds++
		}
	}

	confidence := 0.7
	indicators := []string{"multiple_below_threshold"}

	if variance(amounts) < 1_000_000 {
		confidence += 0.2
		indicators = append(indicators, "similar_amounts")
	}
	if float64(roundHundreds)/float64(len(below)) > 0.5 {
		confidence += 0.2
		indicators = append(indicators, "round_number_amounts")
	}
	if float64(total) > 1.5*threshold {
		confidence += 0.3
		indicators = append(indicators, "total_exceeds_threshold")
	}
	if confidence > 1.0 {
		confidence = 1.0
	}

	return &domain.DetectedPattern{
		PatternID:       uuid.New(),
		PatternType:     domain.PatternStructuring,
		Severity:        domain.SeverityHigh,
		Status:          domain.PatternDetected,
		PrimaryEntityID: customerID,
		TransactionIDs:  ids,
		Confidence:      confidence,
		Indicators:      indicators,
	}
}

func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var sqDiff float64
	for _, v := range values {
		d := v - mean
		sqDiff += d * d
	}
	return sqDiff / float64(len(values))
}

// edge is one source->target transfer in the transaction graph
type edge struct {
	tx     domain.Transaction
	target uuid.UUID
}

// buildGraph builds a directed adjacency list of source account -> edges,
// keyed by account ID, from a transaction batch.
func buildGraph(txs []domain.Transaction) map[uuid.UUID][]edge {
	graph := make(map[uuid.UUID][]edge)
	for _, tx := range txs {
		graph[tx.SourceAccountID] = append(graph[tx.SourceAccountID], edge{tx: tx, target: tx.TargetAccountID})
	}
	return graph
}

// DetectLayering builds a directed multigraph of source->target edges and
// emits one layering candidate per simple path of length >= 3 found via
// DFS from each node up to max_hops (§4.5). Confidence is
// 0.6 + 0.1*(len-3), capped at 1.0. This traversal tracks "on current path"
// membership (not a single shared visited set), so it does not under-report
// cycles across branches the way the original source's shared-set
// traversal could.
func DetectLayering(txs []domain.Transaction) []domain.DetectedPattern {
	graph := buildGraph(txs)

	var out []domain.DetectedPattern
	for start := range graph {
		out = append(out, dfsLayering(graph, start, []uuid.UUID{start}, nil, map[uuid.UUID]bool{start: true})...)
	}
	return out
}

func dfsLayering(graph map[uuid.UUID][]edge, current uuid.UUID, path []uuid.UUID, txIDs []uuid.UUID, onPath map[uuid.UUID]bool) []domain.DetectedPattern {
	var out []domain.DetectedPattern
	if len(path) >= minLayerLength+1 {
		out = append(out, newLayeringPattern(path, txIDs))
	}
	if len(path) > maxHops {
		return out
	}
	for _, e := range graph[current] {
		if onPath[e.target] {
			continue // simple path only
		}
		onPath[e.target] = true
		out = append(out, dfsLayering(graph, e.target, append(path, e.target), append(txIDs, e.tx.TransactionID), onPath)...)
		delete(onPath, e.target)
	}
	return out
}

func newLayeringPattern(path []uuid.UUID, txIDs []uuid.UUID) domain.DetectedPattern {
	layerCount := len(path) - 1
	confidence := 0.6 + 0.1*float64(layerCount-minLayerLength)
	if confidence > 1.0 {
		confidence = 1.0
	}
	intermediates := append([]uuid.UUID(nil), path[1:len(path)-1]...)
	return domain.DetectedPattern{
		PatternID:       uuid.New(),
		PatternType:     domain.PatternLayering,
		Severity:        domain.SeverityHigh,
		Status:          domain.PatternDetected,
		PrimaryEntityID: path[0],
		TransactionIDs:  append([]uuid.UUID(nil), txIDs...),
		Confidence:      confidence,
		Indicators:      []string{"multi_hop_transfer"},
		Details: map[string]any{
			"intermediate_entities": intermediates,
			"layer_count":           layerCount,
		},
	}
}

// DetectRoundTripping emits a round-tripping pattern for each account
// where a counterparty appears in both the outbound and inbound sets and
// inbound_amount >= 0.8*outbound_amount (confidence 0.8). Start nodes are
// bounded to maxRoundTripStarts to keep cost predictable on dense graphs
// (§4.5).
func DetectRoundTripping(txs []domain.Transaction) []domain.DetectedPattern {
	outbound := make(map[uuid.UUID]map[uuid.UUID]int64) // account -> counterparty -> total sent
	inbound := make(map[uuid.UUID]map[uuid.UUID]int64)  // account -> counterparty -> total received
	txByPair := make(map[string][]uuid.UUID)

	for _, tx := range txs {
		if outbound[tx.SourceAccountID] == nil {
			outbound[tx.SourceAccountID] = make(map[uuid.UUID]int64)
		}
		outbound[tx.SourceAccountID][tx.TargetAccountID] += tx.Amount.Amount

		if inbound[tx.TargetAccountID] == nil {
			inbound[tx.TargetAccountID] = make(map[uuid.UUID]int64)
		}
		inbound[tx.TargetAccountID][tx.SourceAccountID] += tx.Amount.Amount

		txByPair[pairKey(tx.SourceAccountID, tx.TargetAccountID)] = append(txByPair[pairKey(tx.SourceAccountID, tx.TargetAccountID)], tx.TransactionID)
	}

	accounts := sortedAccounts(outbound)
	if len(accounts) > maxRoundTripStarts {
		accounts = accounts[:maxRoundTripStarts]
	}

	var out []domain.DetectedPattern
	for _, account := range accounts {
		for counterparty, outAmount := range outbound[account] {
			inAmount, ok := inbound[account][counterparty]
			if !ok {
				continue
			}
			if float64(inAmount) < 0.8*float64(outAmount) {
				continue
			}
			txIDs := append(
				append([]uuid.UUID{}, txByPair[pairKey(account, counterparty)]...),
				txByPair[pairKey(counterparty, account)]...,
			)
			out = append(out, domain.DetectedPattern{
				PatternID:       uuid.New(),
				PatternType:     domain.PatternRoundTripping,
				Severity:        domain.SeverityHigh,
				Status:          domain.PatternDetected,
				PrimaryEntityID: account,
				TransactionIDs:  txIDs,
				Confidence:      0.8,
				Indicators:      []string{"round_trip"},
				Details:         map[string]any{"counterparty": counterparty},
			})
		}
	}
	return out
}

func pairKey(a, b uuid.UUID) string {
	return a.String() + "->" + b.String()
}

func sortedAccounts(m map[uuid.UUID]map[uuid.UUID]int64) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// DetectRapidMovementBatch iterates credit-debit pairs of an account
// within the threshold window and emits patterns per the same contract as
// the realtime evaluator (§4.4, §4.5).
func DetectRapidMovementBatch(txs []domain.Transaction, hoursWindow, ratioThreshold, minAmount float64) []domain.DetectedPattern {
	byAccount := make(map[uuid.UUID][]domain.Transaction)
	for _, tx := range txs {
		if tx.Direction == domain.DirectionCredit {
			byAccount[tx.TargetAccountID] = append(byAccount[tx.TargetAccountID], tx)
		} else if tx.Direction == domain.DirectionDebit {
			byAccount[tx.SourceAccountID] = append(byAccount[tx.SourceAccountID], tx)
		}
	}

	var out []domain.DetectedPattern
	for account, accountTxs := range byAccount {
		credits := filterDirection(accountTxs, domain.DirectionCredit)
		debits := filterDirection(accountTxs, domain.DirectionDebit)
		for _, credit := range credits {
			for _, debit := range debits {
				if debit.Timestamp.Before(credit.Timestamp) {
					continue
				}
				elapsedHours := debit.Timestamp.Sub(credit.Timestamp).Hours()
				if elapsedHours > hoursWindow {
					continue
				}
				if float64(credit.Amount.Amount) < minAmount || float64(debit.Amount.Amount) < minAmount {
					continue
				}
				ratio := float64(debit.Amount.Amount) / float64(credit.Amount.Amount)
				if ratio < ratioThreshold {
					continue
				}
				out = append(out, domain.DetectedPattern{
					PatternID:       uuid.New(),
					PatternType:     domain.PatternRapidMovement,
					Severity:        domain.SeverityMedium,
					Status:          domain.PatternDetected,
					PrimaryEntityID: account,
					TransactionIDs:  []uuid.UUID{credit.TransactionID, debit.TransactionID},
					Confidence:      0.7 + 0.3*minFloat(1.0, ratio),
					Indicators:      []string{"rapid_movement"},
				})
			}
		}
	}
	return out
}

func filterDirection(txs []domain.Transaction, dir domain.TransactionDirection) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Direction == dir {
			out = append(out, tx)
		}
	}
	return out
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
