// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package probe

// Hook is a (program name, map binding) pair identifying a user-provided
// BPF program a builder should chain into its probe. It is comparable so it
// can be deduplicated in a set (map[Hook]struct{}) within a single builder.
type Hook struct {
	Program    string
	MapBinding string
}
