// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package display

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatterIndentsEveryLine(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf, WithLevel(2))
	require.NoError(t, f.WriteString("a\nb\n"))
	f.Close()
	require.Equal(t, "  a\n  b\n", buf.String())
}

func TestFormatterConfIncAndResetLevel(t *testing.T) {
	conf := NewFormatterConf()
	conf.IncLevel(2)
	require.Equal(t, 2, conf.level)
	conf.IncLevel(2)
	require.Equal(t, 4, conf.level)
	conf.ResetLevel()
	require.Equal(t, 2, conf.level)
	conf.ResetLevel()
	require.Equal(t, 0, conf.level)
}

func TestFormatterConfResetWithNoSavedLevelIsNonFatal(t *testing.T) {
	conf := NewFormatterConf()
	require.NotPanics(t, func() { conf.ResetLevel() })
	require.Equal(t, 0, conf.level)
}

func TestDelimWriterSkipsFirstWrite(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf, NewFormatterConf())
	d := NewDelimWriter(' ')

	require.False(t, d.Used())
	require.NoError(t, d.Write(f))
	require.NoError(t, f.WriteString("a"))
	require.NoError(t, d.Write(f))
	require.NoError(t, f.WriteString("b"))
	require.True(t, d.Used())
	f.Close()
	require.Equal(t, "a b", buf.String())
}

func TestDelimWriterResetReturnsToFreshState(t *testing.T) {
	d := NewDelimWriter(' ')
	var buf bytes.Buffer
	f := NewFormatter(&buf, NewFormatterConf())
	require.NoError(t, d.Write(f))
	require.NoError(t, f.WriteString("a"))
	require.True(t, d.Used())

	d.Reset()
	require.False(t, d.Used())
}

func TestNestedFormatterUsesIncrementedLevel(t *testing.T) {
	var buf bytes.Buffer
	conf := NewFormatterConf()
	f := NewFormatter(&buf, conf)
	require.NoError(t, f.WriteString("top\n"))
	f.Close()

	conf.IncLevel(2)
	f2 := NewFormatter(&buf, conf)
	require.NoError(t, f2.WriteString("nested"))
	f2.Close()

	require.Equal(t, "top\n  nested", buf.String())
}
