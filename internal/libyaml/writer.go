// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Writer stage: hands the emitter's output buffer off to whichever
// destination SetOutputString or SetOutputWriter configured.

package libyaml

// flush writes the unflushed portion of the emitter's buffer out through
// write_handler and resets the buffer for reuse. It panics if no output
// target has been configured, matching the parser's equivalent contract
// on the read side.
func (emitter *Emitter) flush() error {
	if emitter.write_handler == nil {
		panic("write handler not set")
	}
	if emitter.buffer_pos == 0 {
		return nil
	}
	if err := emitter.write_handler(emitter, emitter.buffer[:emitter.buffer_pos]); err != nil {
		return err
	}
	emitter.buffer_pos = 0
	return nil
}
