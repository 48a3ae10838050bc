package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dgiraldo/stockia-api/internal/domain"
	"github.com/dgiraldo/stockia-api/internal/domain/entity"
	"github.com/dgiraldo/stockia-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = "id, sku, name, description, category_id, price, cost, stock, min_stock, status, created_at, updated_at"

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	db querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{db: pool}
}

// newProductRepo versión atada a una transacción (ver TxRunner).
func newProductRepo(q querier) *ProductRepo {
	return &ProductRepo{db: q}
}

// Create persiste un producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, name, description, category_id, price, cost, stock, min_stock, status, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.SKU, p.Name, p.Description, p.CategoryID, p.Price, p.Cost, p.Stock, p.MinStock, p.Status,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.scanOne(r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id), "get product by id")
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.scanOne(r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE sku = $1`, sku), "get product by sku")
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	var p entity.Product
	var description, categoryID *string
	err := row.Scan(&p.ID, &p.SKU, &p.Name, &description, &categoryID, &p.Price, &p.Cost,
		&p.Stock, &p.MinStock, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if description != nil {
		p.Description = *description
	}
	if categoryID != nil {
		p.CategoryID = *categoryID
	}
	return &p, nil
}

// Update actualiza un producto (sin tocar stock).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = NULLIF($3, ''), category_id = NULLIF($4, ''),
			price = $5, cost = $6, min_stock = $7, status = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.CategoryID, p.Price, p.Cost, p.MinStock, p.Status, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock fija el stock absoluto del producto.
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, stock int) error {
	_, err := r.db.Exec(ctx, `UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`, id, stock)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// List lista productos con paginación.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return r.scanMany(rows)
}

// Search busca por nombre o SKU sobre la forma sin acentos, case-insensitive.
// Requiere la extensión unaccent.
func (r *ProductRepo) Search(ctx context.Context, normalizedQuery string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + ` FROM products
		WHERE unaccent(lower(name)) LIKE '%' || $1 || '%' OR lower(sku) LIKE '%' || $1 || '%'
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, normalizedQuery, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return r.scanMany(rows)
}

// ListLowStock lista productos activos en o bajo su umbral mínimo.
func (r *ProductRepo) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE stock <= min_stock AND status = 'active' ORDER BY stock ASC`)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	return r.scanMany(rows)
}

func (r *ProductRepo) scanMany(rows pgx.Rows) ([]*entity.Product, error) {
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		var description, categoryID *string
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &description, &categoryID, &p.Price, &p.Cost,
			&p.Stock, &p.MinStock, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if description != nil {
			p.Description = *description
		}
		if categoryID != nil {
			p.CategoryID = *categoryID
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
