package service

import (
	"context"
	"strings"

	"github.com/navidsh/marketplace-api/internal/model"
	"github.com/navidsh/marketplace-api/internal/repository"
	"github.com/navidsh/marketplace-api/internal/utils"
)

// UserService implements registration, login and the user-facing and
// administrative account operations.
type UserService struct {
	Users      UserStore
	Products   ProductStore
	BcryptCost int
}

func NewUserService(users UserStore, products ProductStore, bcryptCost int) *UserService {
	return &UserService{Users: users, Products: products, BcryptCost: bcryptCost}
}

// RegisterInput carries the registration form.  All fields are required.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     string
}

// Register validates the form, hashes the password and stores the user.
// A duplicate email fails with a conflict and leaves the original
// account untouched.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (model.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Name == "" || in.Email == "" || in.Phone == "" || in.Password == "" || in.Role == "" {
		return model.User{}, errValidation("please fill the full form")
	}
	role, ok := model.ParseRole(in.Role)
	if !ok {
		return model.User{}, errValidation("role must be buyer, seller or admin")
	}
	hash, err := utils.HashPassword(in.Password, s.BcryptCost)
	if err != nil {
		return model.User{}, err
	}
	id, err := s.Users.Create(ctx, in.Name, in.Email, in.Phone, hash, role)
	if err != nil {
		if err == repository.ErrEmailExists {
			return model.User{}, errConflict("email already registered")
		}
		return model.User{}, err
	}
	return s.Users.GetByID(ctx, id)
}

// Login verifies credentials and returns the user.  Unknown email and
// wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return model.User{}, errValidation("please provide email and password")
	}
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return model.User{}, errAuth("invalid credentials")
		}
		return model.User{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return model.User{}, errAuth("invalid credentials")
	}
	return u, nil
}

// Get returns a user by id.
func (s *UserService) Get(ctx context.Context, id uint64) (model.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return model.User{}, errNotFound("user not found")
		}
		return model.User{}, err
	}
	return u, nil
}

// UpdateProfile changes name and/or phone of the caller's own account.
// Nil pointers mean "not supplied"; supplying neither is a validation
// error, and touching any other account is forbidden.
func (s *UserService) UpdateProfile(ctx context.Context, caller Caller, targetID uint64, name, phone *string) (model.User, error) {
	if name == nil && phone == nil {
		return model.User{}, errValidation("please provide fields to update")
	}
	if targetID != caller.ID {
		return model.User{}, errForbidden("you can only update your own profile")
	}
	u, err := s.Get(ctx, targetID)
	if err != nil {
		return model.User{}, err
	}
	if err := s.Users.UpdateProfile(ctx, targetID, name, phone); err != nil {
		return model.User{}, err
	}
	if name != nil {
		u.Name = *name
	}
	if phone != nil {
		u.Phone = *phone
	}
	return u, nil
}

// AdminReport returns every seller with their listings and every buyer
// with their purchases.  Admin only.
func (s *UserService) AdminReport(ctx context.Context, caller Caller) (model.AdminReport, error) {
	if !caller.Role.IsAdmin() {
		return model.AdminReport{}, errForbidden("only admin can access this resource")
	}
	sellers, err := s.Users.ListByRole(ctx, model.RoleSeller)
	if err != nil {
		return model.AdminReport{}, err
	}
	report := model.AdminReport{Sellers: []model.SellerReport{}, Buyers: []model.BuyerReport{}}
	for _, u := range sellers {
		products, err := s.Products.ListBySeller(ctx, u.ID)
		if err != nil {
			return model.AdminReport{}, err
		}
		report.Sellers = append(report.Sellers, model.SellerReport{User: u, Products: products})
	}
	buyers, err := s.Users.ListByRole(ctx, model.RoleBuyer)
	if err != nil {
		return model.AdminReport{}, err
	}
	for _, u := range buyers {
		purchased, err := s.Products.ListPurchasedBy(ctx, u.ID)
		if err != nil {
			return model.AdminReport{}, err
		}
		report.Buyers = append(report.Buyers, model.BuyerReport{User: u, PurchasedProducts: purchased})
	}
	return report, nil
}

// ProductsBought returns the products a user has purchased, sellers
// populated, in purchase order.
func (s *UserService) ProductsBought(ctx context.Context, userID uint64) ([]model.ProductWithSeller, error) {
	if userID == 0 {
		return nil, errValidation("user id is required")
	}
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}
	return s.Products.ListPurchasedBy(ctx, userID)
}

// ProductsCreated returns a seller's listings with buyer details for the
// sold ones.
func (s *UserService) ProductsCreated(ctx context.Context, sellerID uint64) ([]model.ProductWithBuyer, error) {
	if sellerID == 0 {
		return nil, errValidation("user id is required")
	}
	return s.Products.ListBySeller(ctx, sellerID)
}

// DeleteUser permanently removes an account.  Admin only.
func (s *UserService) DeleteUser(ctx context.Context, caller Caller, id uint64) error {
	if !caller.Role.IsAdmin() {
		return errForbidden("only admin can delete users")
	}
	if id == 0 {
		return errValidation("user id is required")
	}
	if err := s.Users.Delete(ctx, id); err != nil {
		if err == repository.ErrUserNotFound {
			return errNotFound("user not found")
		}
		return err
	}
	return nil
}
