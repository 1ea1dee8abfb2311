package repository

import (
	"context"
	"database/sql"

	"github.com/navidsh/marketplace-api/internal/model"
)

// ProductRepo provides CRUD operations and the purchase transition for
// the products table.  Queries that annotate a product with seller or
// buyer details join against users; only id, name and email of the
// related user are ever selected.
type ProductRepo struct{ DB *sql.DB }

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{DB: db} }

const productColumns = "id,name,image,price,location,description,category,seller_id,buyer_id,sold,created_at,updated_at"

func scanProduct(sc interface {
	Scan(dest ...interface{}) error
}) (model.Product, error) {
	var p model.Product
	var buyer sql.NullInt64
	err := sc.Scan(&p.ID, &p.Name, &p.Image, &p.Price, &p.Location, &p.Description,
		&p.Category, &p.SellerID, &buyer, &p.Sold, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return p, err
	}
	if buyer.Valid {
		b := uint64(buyer.Int64)
		p.BuyerID = &b
	}
	return p, nil
}

// Create inserts a new unsold product owned by the given seller and
// returns its ID.
func (r *ProductRepo) Create(ctx context.Context, p *model.Product) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO products (name, image, price, location, description, category, seller_id) VALUES (?,?,?,?,?,?,?)",
		p.Name, p.Image, p.Price, p.Location, p.Description, p.Category, p.SellerID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	p.ID = uint64(id)
	return p.ID, nil
}

// GetByID fetches a product by id.
func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (model.Product, error) {
	p, err := scanProduct(r.DB.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return p, ErrProductNotFound
	}
	return p, err
}

// GetWithSeller fetches a product with its seller's name and email.
func (r *ProductRepo) GetWithSeller(ctx context.Context, id uint64) (model.ProductWithSeller, error) {
	const q = `SELECT p.id,p.name,p.image,p.price,p.location,p.description,p.category,
	                  p.seller_id,p.buyer_id,p.sold,p.created_at,p.updated_at,
	                  u.id,u.name,u.email
	           FROM products p JOIN users u ON u.id = p.seller_id
	           WHERE p.id=? LIMIT 1`
	var out model.ProductWithSeller
	var buyer sql.NullInt64
	err := r.DB.QueryRowContext(ctx, q, id).Scan(
		&out.ID, &out.Name, &out.Image, &out.Price, &out.Location, &out.Description,
		&out.Category, &out.SellerID, &buyer, &out.Sold, &out.CreatedAt, &out.UpdatedAt,
		&out.Seller.ID, &out.Seller.Name, &out.Seller.Email)
	if err == sql.ErrNoRows {
		return out, ErrProductNotFound
	}
	if err != nil {
		return out, err
	}
	if buyer.Valid {
		b := uint64(buyer.Int64)
		out.BuyerID = &b
	}
	return out, nil
}

func (r *ProductRepo) queryWithSeller(ctx context.Context, q string, args ...interface{}) ([]model.ProductWithSeller, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.ProductWithSeller{}
	for rows.Next() {
		var p model.ProductWithSeller
		var buyer sql.NullInt64
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Image, &p.Price, &p.Location, &p.Description,
			&p.Category, &p.SellerID, &buyer, &p.Sold, &p.CreatedAt, &p.UpdatedAt,
			&p.Seller.ID, &p.Seller.Name, &p.Seller.Email); err != nil {
			return nil, err
		}
		if buyer.Valid {
			b := uint64(buyer.Int64)
			p.BuyerID = &b
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListAll returns every product with seller details, newest first.
func (r *ProductRepo) ListAll(ctx context.Context) ([]model.ProductWithSeller, error) {
	const q = `SELECT p.id,p.name,p.image,p.price,p.location,p.description,p.category,
	                  p.seller_id,p.buyer_id,p.sold,p.created_at,p.updated_at,
	                  u.id,u.name,u.email
	           FROM products p JOIN users u ON u.id = p.seller_id
	           ORDER BY p.created_at DESC, p.id DESC`
	return r.queryWithSeller(ctx, q)
}

// SearchByName returns products whose name contains the given substring,
// case-insensitively and unanchored.  An empty substring matches all.
func (r *ProductRepo) SearchByName(ctx context.Context, name string) ([]model.Product, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE LOWER(name) LIKE CONCAT('%', LOWER(?), '%') ORDER BY id",
		name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update rewrites the mutable listing fields of a product.  Ownership
// and field selection happen in the service layer; seller_id, buyer_id
// and sold are deliberately not part of this statement.
func (r *ProductRepo) Update(ctx context.Context, p model.Product) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE products SET name=?, image=?, price=?, location=?, description=?, category=? WHERE id=?",
		p.Name, p.Image, p.Price, p.Location, p.Description, p.Category, p.ID)
	return err
}

// Delete permanently removes a product.  Returns ErrProductNotFound when
// no row was deleted.
func (r *ProductRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

// MarkSold performs the purchase transition as a single conditional
// update: the row is claimed only if it is still unsold, so two
// concurrent buyers can never both succeed.  When the update matches no
// row the product is either gone (ErrProductNotFound) or already sold
// (ErrAlreadySold).
func (r *ProductRepo) MarkSold(ctx context.Context, productID, buyerID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE products SET sold=1, buyer_id=? WHERE id=? AND sold=0", buyerID, productID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var sold bool
	err = r.DB.QueryRowContext(ctx, "SELECT sold FROM products WHERE id=?", productID).Scan(&sold)
	if err == sql.ErrNoRows {
		return ErrProductNotFound
	}
	if err != nil {
		return err
	}
	return ErrAlreadySold
}

// ListBySeller returns a seller's listings with buyer details populated
// for the sold ones.
func (r *ProductRepo) ListBySeller(ctx context.Context, sellerID uint64) ([]model.ProductWithBuyer, error) {
	const q = `SELECT p.id,p.name,p.image,p.price,p.location,p.description,p.category,
	                  p.seller_id,p.buyer_id,p.sold,p.created_at,p.updated_at,
	                  b.id,b.name,b.email
	           FROM products p LEFT JOIN users b ON b.id = p.buyer_id
	           WHERE p.seller_id=? ORDER BY p.id`
	rows, err := r.DB.QueryContext(ctx, q, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.ProductWithBuyer{}
	for rows.Next() {
		var p model.ProductWithBuyer
		var buyerID sql.NullInt64
		var bid sql.NullInt64
		var bname, bemail sql.NullString
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Image, &p.Price, &p.Location, &p.Description,
			&p.Category, &p.SellerID, &buyerID, &p.Sold, &p.CreatedAt, &p.UpdatedAt,
			&bid, &bname, &bemail); err != nil {
			return nil, err
		}
		if buyerID.Valid {
			b := uint64(buyerID.Int64)
			p.BuyerID = &b
		}
		if bid.Valid {
			p.Buyer = &model.UserRef{ID: uint64(bid.Int64), Name: bname.String, Email: bemail.String}
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListPurchasedBy returns the products a user has bought, in purchase
// order, each with its seller's name and email.
func (r *ProductRepo) ListPurchasedBy(ctx context.Context, userID uint64) ([]model.ProductWithSeller, error) {
	const q = `SELECT p.id,p.name,p.image,p.price,p.location,p.description,p.category,
	                  p.seller_id,p.buyer_id,p.sold,p.created_at,p.updated_at,
	                  u.id,u.name,u.email
	           FROM purchases pu
	           JOIN products p ON p.id = pu.product_id
	           JOIN users u ON u.id = p.seller_id
	           WHERE pu.user_id=? ORDER BY pu.id`
	return r.queryWithSeller(ctx, q, userID)
}
