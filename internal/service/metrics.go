package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var documentsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "application_documents_total",
	Help: "Application document requests by outcome.",
}, []string{"outcome"})
