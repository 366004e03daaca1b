// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package probe

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ls-2018/retis/internal/retislog"
)

// Attachment pairs an initialized builder with the probe it should attach.
type Attachment struct {
	Builder ProbeBuilder
	Probe   Probe
}

// AttachAll attaches every builder/probe pair, continuing past individual
// failures: per §7, a program load or link failure is fatal to that one
// probe, but other probes may still attach. Every link that did attach is
// returned so the caller can detach it later; every failure is logged and
// folded into the returned error via multierr, so the caller can decide
// whether any attach failure should abort the run.
func AttachAll(attachments []Attachment) ([]Link, error) {
	links := make([]Link, 0, len(attachments))
	var errs error

	for _, a := range attachments {
		l, err := a.Builder.Attach(a.Probe)
		if err != nil {
			retislog.L().Error("probe attach failed",
				zap.Stringer("kind", a.Probe.Kind),
				zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}
		links = append(links, l)
	}

	return links, errs
}

// DetachAll closes every link, aggregating close failures the same way
// AttachAll aggregates attach failures.
func DetachAll(links []Link) error {
	var errs error
	for _, l := range links {
		if err := l.Close(); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}
