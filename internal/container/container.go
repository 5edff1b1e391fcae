// Package container provides dependency injection for the application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"github.com/Jagbo/zenrent-sub000/internal/categorizer"
	"github.com/Jagbo/zenrent-sub000/internal/config"
	"github.com/Jagbo/zenrent-sub000/internal/currency"
	"github.com/Jagbo/zenrent-sub000/internal/logging"
	"github.com/Jagbo/zenrent-sub000/internal/service"
	"github.com/Jagbo/zenrent-sub000/internal/store"
	"github.com/Jagbo/zenrent-sub000/internal/transformer"
	"github.com/Jagbo/zenrent-sub000/internal/transformerror"
	"github.com/Jagbo/zenrent-sub000/internal/validation"
)

// Container holds all application dependencies and provides methods to access
// them. It is immutable after creation; dependencies can only be reached
// through getter methods.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	errorStore  *store.FileErrorStore
	categorizer *categorizer.Categorizer
	validator   *validation.Validator
	handler     *transformerror.Handler
	service     *service.Service
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Create logger first as it's needed by other components
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	overrides, err := store.LoadKeywordOverrides(cfg.Categories.KeywordsFile, logger)
	if err != nil {
		return nil, err
	}
	cat := categorizer.New(logger, overrides)

	var errorStore *store.FileErrorStore
	if cfg.Errors.AuditLogFile != "" {
		errorStore, err = store.NewFileErrorStore(cfg.Errors.AuditLogFile)
		if err != nil {
			return nil, err
		}
	}
	// A nil interface must stay nil; a typed nil pointer would not.
	var errStoreIface transformerror.ErrorStore
	if errorStore != nil {
		errStoreIface = errorStore
	}
	handler := transformerror.NewHandler(errStoreIface, logger, cfg.DedupeWindow())

	opts := cfg.TransformationOptions()
	validator := validation.NewValidator(currency.ParseCode(opts.CurrencyCode))

	vat := transformer.NewVATTransformer(opts, cat, logger)
	property := transformer.NewPropertyIncomeTransformer(opts, cat, logger)
	sa := transformer.NewSelfAssessmentTransformer(opts, cat, property, logger)

	svc := service.New(opts, vat, property, sa, validator, handler, logger)

	logger.Info("Container initialized successfully",
		logging.Field{Key: "currency", Value: opts.CurrencyCode},
		logging.Field{Key: "audit_log_enabled", Value: errorStore != nil})

	return &Container{
		logger:      logger,
		config:      cfg,
		errorStore:  errorStore,
		categorizer: cat,
		validator:   validator,
		handler:     handler,
		service:     svc,
	}, nil
}

// GetLogger returns the application logger.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the application configuration.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetService returns the transformation service.
func (c *Container) GetService() *service.Service {
	return c.service
}

// GetCategorizer returns the transaction categorizer.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetValidator returns the payload validator.
func (c *Container) GetValidator() *validation.Validator {
	return c.validator
}

// GetErrorHandler returns the transformation error handler.
func (c *Container) GetErrorHandler() *transformerror.Handler {
	return c.handler
}

// GetErrorStore returns the audit error store, or nil when persistence is
// not configured.
func (c *Container) GetErrorStore() *store.FileErrorStore {
	return c.errorStore
}
