package agent

import (
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/go-fleet/fieldsync/crdt"
)

type loggingService struct {
	logger  log.Logger
	service Service
}

// NewLoggingService wraps a provided existing
// service with the provided logger.
func NewLoggingService(s Service, logger log.Logger) Service {
	return &loggingService{logger, s}
}

// Record wraps this service's Record method
// with added logging capabilities.
func (s *loggingService) Record(section string) {

	s.service.Record(section)

	level.Info(s.logger).Log(
		"msg", "recorded completed section",
		"section", section,
		"size", s.service.Size(),
	)
}

func (s *loggingService) Completed(section string) bool {
	return s.service.Completed(section)
}

func (s *loggingService) Sections() []string {
	return s.service.Sections()
}

func (s *loggingService) Size() int {
	return s.service.Size()
}

// Apply wraps this service's Apply method
// with added logging capabilities.
func (s *loggingService) Apply(remote []string) {

	s.service.Apply(remote)

	level.Debug(s.logger).Log(
		"msg", "applied peer snapshot",
		"received", len(remote),
		"size", s.service.Size(),
	)
}

func (s *loggingService) Set() *crdt.GSet[string] {
	return s.service.Set()
}
