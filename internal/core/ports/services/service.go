package services

// ServiceContainer holds instances of all the application services.
// It is the entry point used by the handlers and the CLI.
type ServiceContainer struct {
	ExchangeRate ExchangeRateSvcFacade
	Conversion   ConversionSvcFacade
	Bulk         BulkConversionSvc
}
