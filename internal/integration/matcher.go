/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package integration

import "strings"

const (
	execKey    = "Exec"
	tryExecKey = "TryExec"
)

type matchState int

const (
	stateStartOfLine matchState = iota
	stateCopying
	// Dropping the rest of a rewritten Exec value; the newline survives.
	stateSkipValue
	// Dropping a TryExec line, newline included.
	stateSkipLine
	// Partway through a keyword; cursor counts the bytes matched so far.
	stateMatchExec
	stateMatchTryExec
	// The whole keyword matched, waiting for what follows it.
	stateExecKey
	stateTryExecKey
)

var stateNames = map[matchState]string{
	stateStartOfLine:  "start-of-line",
	stateCopying:      "copying",
	stateSkipValue:    "skip-value",
	stateSkipLine:     "skip-line",
	stateMatchExec:    "matching-exec",
	stateMatchTryExec: "matching-tryexec",
	stateExecKey:      "exec-key",
	stateTryExecKey:   "tryexec-key",
}

func (state matchState) String() string {
	return stateNames[state]
}

// What to do with the byte just given to Matcher.Step.
type Verdict int

const (
	// Write the byte.
	Pass Verdict = iota
	// The byte was taken into a partial match and is remembered by the matcher.
	Hold
	// Throw the byte away.
	Drop
	// The byte is the '=' of an Exec key: write it, followed by the replacement value.
	Rewrite
)

type Step struct {
	Verdict Verdict
	// Previously held bytes to write, in order, before acting on the verdict.
	Flush string
}

// Recognizes the Exec and TryExec keys at the start of desktop entry lines, one byte at a time.
// The only memory carried between bytes is the state, how far into a keyword the line has
// matched, and how many spaces followed a complete Exec.
type Matcher struct {
	// Copy an Exec value after the replacement instead of discarding it.
	KeepValue bool

	state  matchState
	cursor int
	spaces int
}

func (m *Matcher) reset(state matchState) {
	m.state = state
	m.cursor = 0
	m.spaces = 0
}

// Gives up on the current line's key: flush whatever was held, pass b, and copy the rest of the
// line unless b ended it.
func (m *Matcher) fallBack(b byte, flush string) Step {
	if b == '\n' {
		m.reset(stateStartOfLine)
	} else {
		m.reset(stateCopying)
	}

	return Step{Verdict: Pass, Flush: flush}
}

func (m *Matcher) keyword() string {
	if m.state == stateMatchTryExec {
		return tryExecKey
	}

	return execKey
}

// The bytes currently held back, i.e. what would have to be written if the input ended now.
func (m *Matcher) Pending() string {
	switch m.state {
	case stateMatchExec, stateMatchTryExec:
		return m.keyword()[:m.cursor]
	case stateExecKey:
		return execKey + strings.Repeat(" ", m.spaces)
	case stateTryExecKey:
		return tryExecKey
	}

	return ""
}

func (m *Matcher) Step(b byte) Step {
	switch m.state {
	case stateStartOfLine:
		switch b {
		case execKey[0]:
			m.reset(stateMatchExec)
			m.cursor = 1
			return Step{Verdict: Hold}
		case tryExecKey[0]:
			m.reset(stateMatchTryExec)
			m.cursor = 1
			return Step{Verdict: Hold}
		}

		return m.fallBack(b, "")

	case stateCopying:
		return m.fallBack(b, "")

	case stateSkipValue:
		if b == '\n' {
			m.reset(stateStartOfLine)
			return Step{Verdict: Pass}
		}

		return Step{Verdict: Drop}

	case stateSkipLine:
		if b == '\n' {
			m.reset(stateStartOfLine)
		}

		return Step{Verdict: Drop}

	case stateMatchExec, stateMatchTryExec:
		key := m.keyword()
		if b != key[m.cursor] {
			return m.fallBack(b, key[:m.cursor])
		}

		m.cursor++
		if m.cursor == len(key) {
			if m.state == stateMatchExec {
				m.reset(stateExecKey)
			} else {
				m.reset(stateTryExecKey)
			}
		}

		return Step{Verdict: Hold}

	case stateExecKey:
		switch b {
		case ' ':
			m.spaces++
			return Step{Verdict: Hold}
		case '=':
			flush := m.Pending()
			if m.KeepValue {
				m.reset(stateCopying)
			} else {
				m.reset(stateSkipValue)
			}

			return Step{Verdict: Rewrite, Flush: flush}
		case '\n':
			// A bare "Exec" line carries nothing to rewrite; drop the key.
			m.reset(stateStartOfLine)
			return Step{Verdict: Pass}
		}

		return m.fallBack(b, m.Pending())

	case stateTryExecKey:
		if b == ' ' || b == '=' {
			m.reset(stateSkipLine)
			return Step{Verdict: Drop}
		}

		return m.fallBack(b, tryExecKey)
	}

	panic("unknown match state " + m.state.String())
}
