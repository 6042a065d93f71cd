package reasoner

import (
	"testing"

	"github.com/ftahirops/dumptriage/internal/model"
)

func TestStringSignalsHighDuplication(t *testing.T) {
	snap := &model.Snapshot{
		UniqueStringCount:      5,
		TotalStringOccurrences: 100,
	}
	var findings []model.Finding
	stringSignals(snap, &findings)
	if !hasTitle(findings, "High duplicate string frequency") {
		t.Fatalf("95%% duplication over 100 occurrences should fire, got %v", titles(findings))
	}
}

func TestStringSignalsQuietBelowVolumeFloor(t *testing.T) {
	snap := &model.Snapshot{
		UniqueStringCount:      1,
		TotalStringOccurrences: 10,
	}
	var findings []model.Finding
	stringSignals(snap, &findings)
	if hasTitle(findings, "High duplicate string frequency") {
		t.Fatalf("90%% duplication but only 10 total occurrences must not fire (below the total>=20 floor)")
	}
}

func TestStringSignalsQuietBelowDuplicationRatio(t *testing.T) {
	snap := &model.Snapshot{
		UniqueStringCount:      50,
		TotalStringOccurrences: 100,
	}
	var findings []model.Finding
	stringSignals(snap, &findings)
	if hasTitle(findings, "High duplicate string frequency") {
		t.Fatalf("50%% duplication is below the 75%% threshold and must not fire")
	}
}

func TestStringSignalsStackConcentration(t *testing.T) {
	snap := &model.Snapshot{
		TotalStringOccurrences: 100,
		UniqueStringCount:      100,
		StackStringOccurrences: 50,
		HeapStringOccurrences:  5,
	}
	var findings []model.Finding
	stringSignals(snap, &findings)
	if !hasTitle(findings, "Strings concentrated on stacks") {
		t.Fatalf("50 stack vs 5 heap occurrences should fire stack concentration, got %v", titles(findings))
	}
}

func TestStringSignalsNoOccurrencesIsQuiet(t *testing.T) {
	snap := &model.Snapshot{}
	var findings []model.Finding
	stringSignals(snap, &findings)
	if len(findings) != 0 {
		t.Fatalf("expected no findings on an empty string set, got %v", titles(findings))
	}
}
