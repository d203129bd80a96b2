// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"bytes"
	"io"
	"os"
)

// CaptureStdout runs fn with os.Stdout redirected to a pipe and returns
// everything fn wrote. The pipe is drained concurrently so large
// outputs cannot block fn. Tests that call it must not run in parallel.
func CaptureStdout(t TB, fn func()) string {
	t.Helper()

	original := os.Stdout
	reader, writer, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = writer

	output := make(chan string)
	go func() {
		var buffer bytes.Buffer
		io.Copy(&buffer, reader)
		reader.Close()
		output <- buffer.String()
	}()

	defer func() {
		os.Stdout = original
	}()
	fn()
	writer.Close()
	os.Stdout = original

	return <-output
}
