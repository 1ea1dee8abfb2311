package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/navidsh/marketplace-api/internal/model"
	"github.com/navidsh/marketplace-api/internal/queue"
	"github.com/navidsh/marketplace-api/internal/repository"
)

// memDB is the shared state behind the in-memory store doubles.  The
// three views below satisfy UserStore, ProductStore and ReviewStore.
// memProducts.MarkSold holds the lock for the whole check-and-set so it
// gives the same claim-once guarantee as the conditional SQL update.
type memDB struct {
	mu         sync.Mutex
	userSeq    uint64
	productSeq uint64
	reviewSeq  uint64
	users      map[uint64]model.User
	products   map[uint64]model.Product
	reviews    []model.Review
	purchases  map[uint64][]uint64
}

func newMemDB() *memDB {
	return &memDB{
		users:     map[uint64]model.User{},
		products:  map[uint64]model.Product{},
		purchases: map[uint64][]uint64{},
	}
}

func (db *memDB) userStore() *memUsers       { return &memUsers{db} }
func (db *memDB) productStore() *memProducts { return &memProducts{db} }
func (db *memDB) reviewStore() *memReviews   { return &memReviews{db} }

func (db *memDB) addUser(name, email string, role model.Role) model.User {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.userSeq++
	u := model.User{
		ID: db.userSeq, Name: name, Email: strings.ToLower(email), Phone: "555-0100",
		PasswordHash: "x", Role: role, CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}
	db.users[u.ID] = u
	return u
}

func (db *memDB) addProduct(sellerID uint64, name string, price float64) model.Product {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.productSeq++
	p := model.Product{
		ID: db.productSeq, Name: name, Image: model.DefaultProductImage, Price: price,
		Location: "NY", Description: "d", Category: "misc", SellerID: sellerID,
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}
	db.products[p.ID] = p
	return p
}

// userRef must be called with db.mu held.
func (db *memDB) userRef(id uint64) model.UserRef {
	u := db.users[id]
	return model.UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}

// ----- UserStore -----

type memUsers struct{ db *memDB }

func (m *memUsers) Create(_ context.Context, name, email, phone, passwordHash string, role model.Role) (uint64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	email = strings.ToLower(email)
	for _, u := range m.db.users {
		if u.Email == email {
			return 0, repository.ErrEmailExists
		}
	}
	m.db.userSeq++
	m.db.users[m.db.userSeq] = model.User{
		ID: m.db.userSeq, Name: name, Email: email, Phone: phone,
		PasswordHash: passwordHash, Role: role,
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}
	return m.db.userSeq, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	email = strings.ToLower(email)
	for _, u := range m.db.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrUserNotFound
}

func (m *memUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	u, ok := m.db.users[id]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (m *memUsers) UpdateProfile(_ context.Context, id uint64, name, phone *string) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	u, ok := m.db.users[id]
	if !ok {
		return nil
	}
	if name != nil {
		u.Name = *name
	}
	if phone != nil {
		u.Phone = *phone
	}
	m.db.users[id] = u
	return nil
}

func (m *memUsers) Delete(_ context.Context, id uint64) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if _, ok := m.db.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(m.db.users, id)
	return nil
}

func (m *memUsers) ListByRole(_ context.Context, role model.Role) ([]model.User, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	out := []model.User{}
	for _, u := range m.db.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memUsers) AddPurchase(_ context.Context, userID, productID uint64) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.db.purchases[userID] = append(m.db.purchases[userID], productID)
	return nil
}

// ----- ProductStore -----

type memProducts struct{ db *memDB }

func (m *memProducts) Create(_ context.Context, p *model.Product) (uint64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.db.productSeq++
	p.ID = m.db.productSeq
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	m.db.products[p.ID] = *p
	return p.ID, nil
}

func (m *memProducts) GetByID(_ context.Context, id uint64) (model.Product, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	p, ok := m.db.products[id]
	if !ok {
		return model.Product{}, repository.ErrProductNotFound
	}
	return p, nil
}

func (m *memProducts) GetWithSeller(_ context.Context, id uint64) (model.ProductWithSeller, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	p, ok := m.db.products[id]
	if !ok {
		return model.ProductWithSeller{}, repository.ErrProductNotFound
	}
	return model.ProductWithSeller{Product: p, Seller: m.db.userRef(p.SellerID)}, nil
}

func (m *memProducts) ListAll(_ context.Context) ([]model.ProductWithSeller, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	out := []model.ProductWithSeller{}
	for _, p := range m.db.products {
		out = append(out, model.ProductWithSeller{Product: p, Seller: m.db.userRef(p.SellerID)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memProducts) SearchByName(_ context.Context, name string) ([]model.Product, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	out := []model.Product{}
	for _, p := range m.db.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(name)) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memProducts) Update(_ context.Context, p model.Product) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	cur, ok := m.db.products[p.ID]
	if !ok {
		return repository.ErrProductNotFound
	}
	cur.Name, cur.Image, cur.Price = p.Name, p.Image, p.Price
	cur.Location, cur.Description, cur.Category = p.Location, p.Description, p.Category
	cur.UpdatedAt = time.Now().UTC()
	m.db.products[p.ID] = cur
	return nil
}

func (m *memProducts) Delete(_ context.Context, id uint64) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if _, ok := m.db.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.db.products, id)
	return nil
}

func (m *memProducts) MarkSold(_ context.Context, productID, buyerID uint64) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	p, ok := m.db.products[productID]
	if !ok {
		return repository.ErrProductNotFound
	}
	if p.Sold {
		return repository.ErrAlreadySold
	}
	b := buyerID
	p.Sold = true
	p.BuyerID = &b
	m.db.products[productID] = p
	return nil
}

func (m *memProducts) ListBySeller(_ context.Context, sellerID uint64) ([]model.ProductWithBuyer, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	out := []model.ProductWithBuyer{}
	for _, p := range m.db.products {
		if p.SellerID != sellerID {
			continue
		}
		row := model.ProductWithBuyer{Product: p}
		if p.BuyerID != nil {
			ref := m.db.userRef(*p.BuyerID)
			row.Buyer = &ref
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memProducts) ListPurchasedBy(_ context.Context, userID uint64) ([]model.ProductWithSeller, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	out := []model.ProductWithSeller{}
	for _, pid := range m.db.purchases[userID] {
		p, ok := m.db.products[pid]
		if !ok {
			continue
		}
		out = append(out, model.ProductWithSeller{Product: p, Seller: m.db.userRef(p.SellerID)})
	}
	return out, nil
}

// ----- ReviewStore -----

type memReviews struct{ db *memDB }

func (m *memReviews) Create(_ context.Context, rv *model.Review) (uint64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.db.reviewSeq++
	rv.ID = m.db.reviewSeq
	rv.CreatedAt = time.Now().UTC()
	m.db.reviews = append(m.db.reviews, *rv)
	return rv.ID, nil
}

func (m *memReviews) GetByProductAndUser(_ context.Context, productID, userID uint64) (model.Review, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, rv := range m.db.reviews {
		if rv.ProductID == productID && rv.UserID == userID {
			return rv, nil
		}
	}
	return model.Review{}, repository.ErrReviewNotFound
}

func (m *memReviews) ListByProduct(_ context.Context, productID uint64) ([]model.ReviewWithUser, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	out := []model.ReviewWithUser{}
	for _, rv := range m.db.reviews {
		if rv.ProductID == productID {
			out = append(out, model.ReviewWithUser{Review: rv, UserName: m.db.users[rv.UserID].Name})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// eventRecorder captures published events for assertions.
type eventRecorder struct {
	mu     sync.Mutex
	events []queue.ProductSoldEvent
}

func (r *eventRecorder) PublishProductSold(_ context.Context, ev queue.ProductSoldEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *eventRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}
