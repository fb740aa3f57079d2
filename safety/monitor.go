package safety

import (
	"context"
	"time"
)

// WarnFunc receives non-fatal 80%-threshold warnings, surfaced out-of-band
// to the I/O adapter (spec.md §4.3).
type WarnFunc func(*Warning)

type loopFrame struct {
	cap  int64
	iter int64
	warned bool
}

// Monitor accounts for and enforces one evaluation's resource quotas. A
// Monitor is created fresh for each top-level evaluation (spec.md §9 design
// decision (a), recorded in SPEC_FULL.md §9): quotas never carry over from a
// previous call.
type Monitor struct {
	limits    Limits
	start     time.Time
	warn      WarnFunc
	warnedT   bool

	instructionCount int64
	recursionDepth   int64
	recursionWarned  bool
	loopStack        []*loopFrame
	memoryEstimate   int64
	memoryWarned     bool
	outputBytes      int64
	outputWarned     bool
}

// New creates a Monitor enforcing limits, starting its wall clock now. warn
// may be nil to discard 80%-threshold warnings.
func New(limits Limits, warn WarnFunc) *Monitor {
	if warn == nil {
		warn = func(*Warning) {}
	}
	return &Monitor{limits: limits, start: time.Now(), warn: warn}
}

// Limits returns the snapshot this Monitor enforces.
func (m *Monitor) Limits() Limits { return m.limits }

// Tick is called by the evaluator before executing every statement. It
// increments the instruction count and raises Timeout if ctx is done or the
// wall-clock budget is exceeded (spec.md §4.3 "tick").
func (m *Monitor) Tick(ctx context.Context) error {
	m.instructionCount++

	elapsedMS := time.Since(m.start).Milliseconds()
	limitMS := int64(m.limits.ExecutionTimeoutMS)

	select {
	case <-ctx.Done():
		return newTimeout(limitMS, elapsedMS)
	default:
	}
	if elapsedMS >= limitMS {
		return newTimeout(limitMS, elapsedMS)
	}
	if !m.warnedT && limitMS > 0 && elapsedMS*100 >= limitMS*80 {
		m.warnedT = true
		m.warn(&Warning{Subkind: SubkindTimeout, Limit: limitMS, Actual: elapsedMS})
	}
	return nil
}

// InstructionCount returns the number of statements Tick has observed so far.
func (m *Monitor) InstructionCount() int64 { return m.instructionCount }

// EnterLoop validates a requested iteration count against the loop cap and
// pushes a new loop frame. It must be called, and must succeed, before any
// loop body statement executes (spec.md §8 "Loop cap": "raises
// SafetyViolation(loop) before any body executes").
func (m *Monitor) EnterLoop(n int64) error {
	cap := int64(m.limits.MaxLoopIterations)
	if n > cap {
		return &Violation{Subkind: SubkindLoop, Limit: cap, Actual: n}
	}
	m.loopStack = append(m.loopStack, &loopFrame{cap: cap})
	return nil
}

// LoopStep records one more completed iteration of the innermost active
// loop.
func (m *Monitor) LoopStep() error {
	if len(m.loopStack) == 0 {
		return nil
	}
	f := m.loopStack[len(m.loopStack)-1]
	f.iter++
	if f.cap > 0 && !f.warned && f.iter*100 >= f.cap*80 {
		f.warned = true
		m.warn(&Warning{Subkind: SubkindLoop, Limit: f.cap, Actual: f.iter})
	}
	if f.iter > f.cap {
		return &Violation{Subkind: SubkindLoop, Limit: f.cap, Actual: f.iter}
	}
	return nil
}

// ExitLoop pops the innermost loop frame.
func (m *Monitor) ExitLoop() {
	if len(m.loopStack) == 0 {
		return
	}
	m.loopStack = m.loopStack[:len(m.loopStack)-1]
}

// EnterCall increments the call-depth counter, raising SafetyViolation if it
// would exceed MaxRecursionDepth (spec.md §4.2 "Call").
func (m *Monitor) EnterCall() error {
	m.recursionDepth++
	cap := int64(m.limits.MaxRecursionDepth)
	if !m.recursionWarned && cap > 0 && m.recursionDepth*100 >= cap*80 {
		m.recursionWarned = true
		m.warn(&Warning{Subkind: SubkindRecursion, Limit: cap, Actual: m.recursionDepth})
	}
	if m.recursionDepth > cap {
		return &Violation{Subkind: SubkindRecursion, Limit: cap, Actual: m.recursionDepth}
	}
	return nil
}

// ExitCall decrements the call-depth counter.
func (m *Monitor) ExitCall() {
	if m.recursionDepth > 0 {
		m.recursionDepth--
	}
}

// RecursionDepth returns the number of call frames currently active.
func (m *Monitor) RecursionDepth() int64 { return m.recursionDepth }

// NoteOutput accumulates output volume, raising SafetyViolation(output) if
// the cumulative byte count exceeds the memory budget (MemoryLimitMB in
// bytes) (spec.md §4.3 "note_output").
func (m *Monitor) NoteOutput(n int) error {
	m.outputBytes += int64(n)
	limit := m.limits.memoryLimitBytes()
	if !m.outputWarned && limit > 0 && m.outputBytes*100 >= limit*80 {
		m.outputWarned = true
		m.warn(&Warning{Subkind: SubkindOutput, Limit: limit, Actual: m.outputBytes})
	}
	if m.outputBytes > limit {
		return &Violation{Subkind: SubkindOutput, Limit: limit, Actual: m.outputBytes}
	}
	return nil
}

// EstimateMemory adds delta bytes to the running memory estimate — the sum
// of held string lengths plus a constant per binding and per command-log
// entry (spec.md §4.3 "estimate_memory") — raising SafetyViolation(memory)
// if MemoryLimitMB is exceeded.
func (m *Monitor) EstimateMemory(delta int) error {
	m.memoryEstimate += int64(delta)
	limit := m.limits.memoryLimitBytes()
	if !m.memoryWarned && limit > 0 && m.memoryEstimate*100 >= limit*80 {
		m.memoryWarned = true
		m.warn(&Warning{Subkind: SubkindMemory, Limit: limit, Actual: m.memoryEstimate})
	}
	if m.memoryEstimate > limit {
		return &Violation{Subkind: SubkindMemory, Limit: limit, Actual: m.memoryEstimate}
	}
	return nil
}

// MemoryEstimate returns the current cumulative memory estimate in bytes.
func (m *Monitor) MemoryEstimate() int64 { return m.memoryEstimate }

// Snapshot is a read-only view of quota usage.
type Snapshot struct {
	InstructionCount int64
	RecursionDepth   int64
	MemoryEstimate   int64
	OutputBytes      int64
	ElapsedMS        int64
}

// Snapshot returns the current quota usage.
func (m *Monitor) Snapshot() Snapshot {
	return Snapshot{
		InstructionCount: m.instructionCount,
		RecursionDepth:   m.recursionDepth,
		MemoryEstimate:   m.memoryEstimate,
		OutputBytes:      m.outputBytes,
		ElapsedMS:        time.Since(m.start).Milliseconds(),
	}
}
