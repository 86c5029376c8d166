package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"member-pricing-service/internal/entity"
	"member-pricing-service/internal/pricing"
	"member-pricing-service/internal/service"
)

// ProductRepository reads and writes catalog prices in MySQL.
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository.
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db}
}

const productColumns = `id, COALESCE(parent_id, 0), name, type, regular_price, sale_price`

func scanProduct(row interface{ Scan(...any) error }) (entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.ParentID, &p.Name, &p.Type, &p.Prices.Regular, &p.Prices.Sale)
	return p, err
}

// GetProduct loads a product, its role prices and, for variable products, its
// variations.
func (r *ProductRepository) GetProduct(ctx context.Context, id int) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %d: %w", id, service.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	ids := []int{p.ID}
	if p.Type == entity.ProductVariable {
		p.Variations, err = r.GetVariations(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		for _, v := range p.Variations {
			ids = append(ids, v.ID)
		}
	}

	rolePrices, err := r.getRolePrices(ctx, ids)
	if err != nil {
		return nil, err
	}
	p.Prices.RolePrices = rolePrices[p.ID]
	for i := range p.Variations {
		p.Variations[i].Prices.RolePrices = rolePrices[p.Variations[i].ID]
	}

	return &p, nil
}

// GetVariations lists the variations of a variable product by id.
func (r *ProductRepository) GetVariations(ctx context.Context, parentID int) ([]entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE parent_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variations []entity.Product
	for rows.Next() {
		v, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		variations = append(variations, v)
	}
	return variations, rows.Err()
}

func (r *ProductRepository) getRolePrices(ctx context.Context, ids []int) (map[int]map[pricing.Role]pricing.Price, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	query := `SELECT product_id, role, price FROM product_role_prices WHERE product_id IN (` + placeholders + `)`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int]map[pricing.Role]pricing.Price)
	for rows.Next() {
		var (
			productID int
			role      pricing.Role
			price     pricing.Price
		)
		if err := rows.Scan(&productID, &role, &price); err != nil {
			return nil, err
		}
		if out[productID] == nil {
			out[productID] = make(map[pricing.Role]pricing.Price)
		}
		out[productID][role] = price
	}
	return out, rows.Err()
}

// CreateProduct inserts a product with its role prices and variations.
func (r *ProductRepository) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := insertProduct(ctx, tx, product); err != nil {
		return nil, err
	}
	for i := range product.Variations {
		v := &product.Variations[i]
		v.ParentID = product.ID
		v.Type = entity.ProductVariation
		if err := insertProduct(ctx, tx, v); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return product, nil
}

func insertProduct(ctx context.Context, tx *sql.Tx, p *entity.Product) error {
	var parent any
	if p.ParentID != 0 {
		parent = p.ParentID
	}

	query := `INSERT INTO products (parent_id, name, type, regular_price, sale_price) VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, query, parent, p.Name, p.Type, p.Prices.Regular, p.Prices.Sale)
	if err != nil {
		return fmt.Errorf("failed to insert product %q: %w", p.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = int(id)

	return setRolePrices(ctx, tx, p.ID, p.Prices.RolePrices)
}

func setRolePrices(ctx context.Context, tx *sql.Tx, productID int, prices map[pricing.Role]pricing.Price) error {
	upsert := `INSERT INTO product_role_prices (product_id, role, price) VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE price = VALUES(price)`
	remove := `DELETE FROM product_role_prices WHERE product_id = ? AND role = ?`

	for role, price := range prices {
		var err error
		if price.IsSet() {
			_, err = tx.ExecContext(ctx, upsert, productID, role, price)
		} else {
			_, err = tx.ExecContext(ctx, remove, productID, role)
		}
		if err != nil {
			return fmt.Errorf("failed to save %s price for product %d: %w", role, productID, err)
		}
	}
	return nil
}

// UpdatePrices stores new prices for a product. For a variable product the
// regular and sale prices are also copied to every variation, skipping empty
// values so an unset field never wipes a variation's own price.
func (r *ProductRepository) UpdatePrices(ctx context.Context, product entity.Product, update entity.PriceUpdate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE products SET regular_price = ?, sale_price = ? WHERE id = ?`
	if _, err := tx.ExecContext(ctx, query, update.RegularPrice, update.SalePrice, product.ID); err != nil {
		return fmt.Errorf("failed to update prices for product %d: %w", product.ID, err)
	}

	if err := setRolePrices(ctx, tx, product.ID, update.RolePrices); err != nil {
		return err
	}

	if product.Type == entity.ProductVariable {
		if update.RegularPrice.IsSet() {
			if _, err := tx.ExecContext(ctx, `UPDATE products SET regular_price = ? WHERE parent_id = ?`, update.RegularPrice, product.ID); err != nil {
				return fmt.Errorf("failed to sync regular price to variations of %d: %w", product.ID, err)
			}
		}
		if update.SalePrice.IsSet() {
			if _, err := tx.ExecContext(ctx, `UPDATE products SET sale_price = ? WHERE parent_id = ?`, update.SalePrice, product.ID); err != nil {
				return fmt.Errorf("failed to sync sale price to variations of %d: %w", product.ID, err)
			}
		}
	}

	return tx.Commit()
}
