package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-invest-hub/internal/logger"
	"github.com/MKhiriev/go-invest-hub/models"
)

// productRepository is the PostgreSQL-backed implementation of
// [ProductRepository].
//
// Listing and partial update are assembled with squirrel because both take a
// variable set of columns: listing filters on type and risk level only when
// the caller supplied them, and update touches only the fields present in
// the request.
type productRepository struct {
	logger  *logger.Logger
	db      *DB
	builder sq.StatementBuilderType
}

// NewProductRepository constructs a [ProductRepository] backed by the
// provided database connection and logger.
func NewProductRepository(db *DB, logger *logger.Logger) ProductRepository {
	logger.Debug().Msg("creating product repository")
	return &productRepository{
		db:      db,
		logger:  logger,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// CreateProduct inserts a catalog entry and returns it with server-assigned
// fields (ID, CreatedAt) populated.
func (r *productRepository) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createProduct,
		product.Name, product.Type, product.TenureMonths,
		product.AnnualYield, product.RiskLevel, product.MinInvestment,
		product.MaxInvestment, product.Description,
	)

	if err := row.Scan(&product.ProductID, &product.CreatedAt); err != nil {
		log.Err(err).Str("func", "*productRepository.CreateProduct").Msg("failed to insert product")
		return models.Product{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return product, nil
}

// GetProducts lists catalog entries, newest first, optionally narrowed by
// investment type and risk level.
func (r *productRepository) GetProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	log := logger.FromContext(ctx)

	queryBuilder := r.builder.
		Select("id", "name", "investment_type", "tenure_months", "annual_yield",
			"risk_level", "min_investment", "max_investment", "description", "created_at").
		From("investment_products").
		OrderBy("created_at DESC")

	if filter.Type != "" {
		queryBuilder = queryBuilder.Where(sq.Eq{"investment_type": filter.Type})
	}
	if filter.RiskLevel != "" {
		queryBuilder = queryBuilder.Where(sq.Eq{"risk_level": filter.RiskLevel})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*productRepository.GetProducts").Msg("failed to build listing query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*productRepository.GetProducts").Msg("failed to query products")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		var product models.Product
		if err := rows.Scan(&product.ProductID, &product.Name, &product.Type, &product.TenureMonths,
			&product.AnnualYield, &product.RiskLevel, &product.MinInvestment, &product.MaxInvestment,
			&product.Description, &product.CreatedAt); err != nil {
			log.Err(err).Str("func", "*productRepository.GetProducts").Msg("failed to scan product row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return products, nil
}

// GetProductByID fetches a single catalog entry.
//
// Returns [ErrProductNotFound] when no row matches.
func (r *productRepository) GetProductByID(ctx context.Context, productID int64) (models.Product, error) {
	log := logger.FromContext(ctx)

	var product models.Product
	row := r.db.QueryRowContext(ctx, getProductByID, productID)

	if err := row.Scan(&product.ProductID, &product.Name, &product.Type, &product.TenureMonths,
		&product.AnnualYield, &product.RiskLevel, &product.MinInvestment, &product.MaxInvestment,
		&product.Description, &product.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Product{}, ErrProductNotFound
		}

		log.Err(err).Str("func", "*productRepository.GetProductByID").Int64("product_id", productID).Msg("failed to scan product")
		return models.Product{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return product, nil
}

// UpdateProduct applies a partial update touching only the fields present in
// update. Passing an empty update is a caller bug; the service validates
// before calling.
//
// Returns [ErrProductNotFound] when no row was affected.
func (r *productRepository) UpdateProduct(ctx context.Context, productID int64, update models.ProductUpdate) error {
	log := logger.FromContext(ctx)

	updateBuilder := r.builder.Update("investment_products").Where(sq.Eq{"id": productID})

	if update.Name != nil {
		updateBuilder = updateBuilder.Set("name", *update.Name)
	}
	if update.Type != nil {
		updateBuilder = updateBuilder.Set("investment_type", *update.Type)
	}
	if update.TenureMonths != nil {
		updateBuilder = updateBuilder.Set("tenure_months", *update.TenureMonths)
	}
	if update.AnnualYield != nil {
		updateBuilder = updateBuilder.Set("annual_yield", *update.AnnualYield)
	}
	if update.RiskLevel != nil {
		updateBuilder = updateBuilder.Set("risk_level", *update.RiskLevel)
	}
	if update.MinInvestment != nil {
		updateBuilder = updateBuilder.Set("min_investment", *update.MinInvestment)
	}
	if update.MaxInvestment != nil {
		updateBuilder = updateBuilder.Set("max_investment", *update.MaxInvestment)
	}
	if update.Description != nil {
		updateBuilder = updateBuilder.Set("description", *update.Description)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*productRepository.UpdateProduct").Int64("product_id", productID).Msg("failed to build update query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*productRepository.UpdateProduct").Int64("product_id", productID).Msg("failed to update product")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// DeleteProduct removes a catalog entry.
//
// Returns [ErrProductNotFound] when no row was affected.
func (r *productRepository) DeleteProduct(ctx context.Context, productID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteProduct, productID)
	if err != nil {
		log.Err(err).Str("func", "*productRepository.DeleteProduct").Int64("product_id", productID).Msg("failed to delete product")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}

	return nil
}
