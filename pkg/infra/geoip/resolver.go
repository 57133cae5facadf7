package geoip

import (
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"
	"github.com/sirupsen/logrus"
)

// UnknownCountry is reported when the country cannot be resolved.
const UnknownCountry = "unknown"

//go:generate mockery --name=Resolver --dir=. --output=./mocks --filename=resolver_mock.go --case=underscore --with-expecter
type Resolver interface {
	// Country returns the ISO-3166 alpha-2 country code for the given IP, or
	// "unknown" when resolution fails.
	Country(ip string) string
	Close() error
}

type maxmindResolver struct {
	reader *geoip2.Reader
	logger *logrus.Logger
}

func NewMaxmindResolver(databasePath string, logger *logrus.Logger) (Resolver, error) {
	reader, err := geoip2.Open(databasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open geoip database: %w", err)
	}
	return &maxmindResolver{reader: reader, logger: logger}, nil
}

func (r *maxmindResolver) Country(ip string) string {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return UnknownCountry
	}
	record, err := r.reader.Country(parsed)
	if err != nil {
		r.logger.WithError(err).WithField("ip", ip).Debug("geoip lookup failed")
		return UnknownCountry
	}
	if record.Country.IsoCode == "" {
		return UnknownCountry
	}
	return record.Country.IsoCode
}

func (r *maxmindResolver) Close() error {
	return r.reader.Close()
}

type noopResolver struct{}

// NewNoopResolver returns a resolver that never resolves. Used when no geoip
// database is configured.
func NewNoopResolver() Resolver {
	return &noopResolver{}
}

func (noopResolver) Country(string) string { return UnknownCountry }
func (noopResolver) Close() error          { return nil }
