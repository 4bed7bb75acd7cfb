package export

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultSuccess  = "success"
	resultFailure  = "failure"
	resultEmpty    = "empty"
	resultRejected = "rejected"

	entryPDF = "pdf"
	entryXML = "xml"
)

var (
	exportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_exports_total",
		Help: "Invoice export attempts by result.",
	}, []string{"result"})

	archiveEntriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_archive_entries_total",
		Help: "Entries written into export archives by kind.",
	}, []string{"kind"})
)
