package reasoner

import (
	"testing"

	"github.com/ftahirops/dumptriage/internal/model"
)

func runningThreads(n int) []model.ThreadSnapshot {
	out := make([]model.ThreadSnapshot, n)
	for i := range out {
		out[i] = model.ThreadSnapshot{ManagedID: i + 1, State: "Running"}
	}
	return out
}

func TestCpuSignalsHighCPUSuspicion(t *testing.T) {
	snap := &model.Snapshot{HostCPUCount: 4, Threads: runningThreads(17)}
	var findings []model.Finding
	cpuSignals(snap, &findings)
	if !hasTitle(findings, "High CPU suspicion") {
		t.Fatalf("17 running threads on 4 cores should exceed the 4x ratio, got %v", titles(findings))
	}
}

func TestCpuSignalsQuietWithinRatio(t *testing.T) {
	snap := &model.Snapshot{HostCPUCount: 4, Threads: runningThreads(16)}
	var findings []model.Finding
	cpuSignals(snap, &findings)
	if hasTitle(findings, "High CPU suspicion") {
		t.Fatalf("16 running threads on 4 cores sits at exactly the threshold and must not fire")
	}
}

func TestCpuSignalsGCThreadsElevated(t *testing.T) {
	threads := []model.ThreadSnapshot{
		{ManagedID: 1, IsGC: true}, {ManagedID: 2, IsGC: true},
		{ManagedID: 3, IsGC: true}, {ManagedID: 4, IsGC: true},
	}
	snap := &model.Snapshot{HostCPUCount: 4, Threads: threads}
	var findings []model.Finding
	cpuSignals(snap, &findings)
	if !hasTitle(findings, "GC threads elevated") {
		t.Fatalf("4 GC threads on a 4-core host (threshold max(2,2)=2) should fire, got %v", titles(findings))
	}
}

func TestThreadpoolSignalsStarvation(t *testing.T) {
	threads := []model.ThreadSnapshot{{ManagedID: 1, State: "Running"}}
	for i := 2; i <= 9; i++ {
		threads = append(threads, model.ThreadSnapshot{ManagedID: i, State: "Waiting"})
	}
	snap := &model.Snapshot{HostCPUCount: 4, Threads: threads}
	var findings []model.Finding
	threadpoolSignals(snap, &findings)
	if !hasTitle(findings, "ThreadPool starvation or queue backlog") {
		t.Fatalf("1 running vs 8 waiting on a 4-core host should flag starvation, got %v", titles(findings))
	}
}

func TestThreadpoolSignalsQuietWithHealthyRatio(t *testing.T) {
	threads := runningThreads(4)
	threads = append(threads, model.ThreadSnapshot{ManagedID: 5, State: "Waiting"})
	snap := &model.Snapshot{HostCPUCount: 4, Threads: threads}
	var findings []model.Finding
	threadpoolSignals(snap, &findings)
	if hasTitle(findings, "ThreadPool starvation or queue backlog") {
		t.Fatalf("a healthy running/waiting ratio must not fire starvation")
	}
}

func TestThreadpoolSignalsGateCongestion(t *testing.T) {
	threads := make([]model.ThreadSnapshot, 5)
	for i := range threads {
		threads[i] = model.ThreadSnapshot{
			ManagedID:   i + 1,
			State:       "Running",
			StackFrames: []string{"System.Threading.ThreadPoolWorkQueue.Dispatch"},
		}
	}
	snap := &model.Snapshot{HostCPUCount: 8, Threads: threads}
	var findings []model.Finding
	threadpoolSignals(snap, &findings)
	if !hasTitle(findings, "ThreadPool gate congestion") {
		t.Fatalf("5 threads parked at the work queue gate should fire congestion, got %v", titles(findings))
	}
}
