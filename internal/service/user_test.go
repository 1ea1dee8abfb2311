package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/navidsh/marketplace-api/internal/model"
)

func newUserService(db *memDB) *UserService {
	return NewUserService(db.userStore(), db.productStore(), bcrypt.MinCost)
}

func validRegistration() RegisterInput {
	return RegisterInput{
		Name: "Sam", Email: "sam@example.com", Phone: "555-0100",
		Password: "secret", Role: "seller",
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newUserService(newMemDB())

	cases := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"missing name", func(in *RegisterInput) { in.Name = "" }},
		{"missing email", func(in *RegisterInput) { in.Email = "" }},
		{"missing phone", func(in *RegisterInput) { in.Phone = "" }},
		{"missing password", func(in *RegisterInput) { in.Password = "" }},
		{"missing role", func(in *RegisterInput) { in.Role = "" }},
		{"whitespace name", func(in *RegisterInput) { in.Name = "   " }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validRegistration()
			tc.mutate(&in)
			_, err := svc.Register(context.Background(), in)
			require.Equal(t, KindValidation, KindOf(err))
		})
	}

	in := validRegistration()
	in.Role = "superuser"
	_, err := svc.Register(context.Background(), in)
	require.Equal(t, KindValidation, KindOf(err))
}

func TestRegisterAndLogin(t *testing.T) {
	db := newMemDB()
	svc := newUserService(db)

	u, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	require.NotZero(t, u.ID)
	require.Equal(t, "sam@example.com", u.Email)
	require.Equal(t, model.RoleSeller, u.Role)
	require.NotEqual(t, "secret", u.PasswordHash)

	got, err := svc.Login(context.Background(), "Sam@Example.COM", "secret")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newMemDB()
	svc := newUserService(db)

	first, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	in := validRegistration()
	in.Name = "Impostor"
	_, err = svc.Register(context.Background(), in)
	require.Equal(t, KindConflict, KindOf(err))

	// The original account is untouched.
	got, err := svc.Get(context.Background(), first.ID)
	require.NoError(t, err)
	require.Equal(t, "Sam", got.Name)
}

func TestLoginInvalidCredentials(t *testing.T) {
	db := newMemDB()
	svc := newUserService(db)
	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	// Unknown email and wrong password fail identically.
	_, err = svc.Login(context.Background(), "nobody@example.com", "secret")
	require.Equal(t, KindAuth, KindOf(err))
	_, err = svc.Login(context.Background(), "sam@example.com", "wrong")
	require.Equal(t, KindAuth, KindOf(err))

	_, err = svc.Login(context.Background(), "", "")
	require.Equal(t, KindValidation, KindOf(err))
}

func TestUpdateProfile(t *testing.T) {
	db := newMemDB()
	u := db.addUser("Sam", "sam@example.com", model.RoleSeller)
	other := db.addUser("Olga", "olga@example.com", model.RoleBuyer)
	svc := newUserService(db)
	caller := Caller{ID: u.ID, Role: u.Role}

	_, err := svc.UpdateProfile(context.Background(), caller, u.ID, nil, nil)
	require.Equal(t, KindValidation, KindOf(err))

	_, err = svc.UpdateProfile(context.Background(), caller, other.ID, strPtr("Hacked"), nil)
	require.Equal(t, KindForbidden, KindOf(err))

	got, err := svc.UpdateProfile(context.Background(), caller, u.ID, strPtr("Samuel"), nil)
	require.NoError(t, err)
	require.Equal(t, "Samuel", got.Name)
	require.Equal(t, u.Phone, got.Phone)

	stored, _ := svc.Get(context.Background(), u.ID)
	require.Equal(t, "Samuel", stored.Name)
	require.Equal(t, u.Phone, stored.Phone)
}

func TestAdminReport(t *testing.T) {
	db := newMemDB()
	admin := db.addUser("Ada", "ada@example.com", model.RoleAdmin)
	seller := db.addUser("Sam", "sam@example.com", model.RoleSeller)
	buyer := db.addUser("Bea", "bea@example.com", model.RoleBuyer)
	p := db.addProduct(seller.ID, "Lamp", 100)
	svc := newUserService(db)

	_, err := svc.AdminReport(context.Background(), Caller{ID: seller.ID, Role: seller.Role})
	require.Equal(t, KindForbidden, KindOf(err))

	products := newProductService(db, nil)
	_, err = products.Buy(context.Background(), Caller{ID: buyer.ID, Role: buyer.Role}, p.ID)
	require.NoError(t, err)

	report, err := svc.AdminReport(context.Background(), Caller{ID: admin.ID, Role: admin.Role})
	require.NoError(t, err)
	require.Len(t, report.Sellers, 1)
	require.Equal(t, seller.ID, report.Sellers[0].ID)
	require.Len(t, report.Sellers[0].Products, 1)
	require.NotNil(t, report.Sellers[0].Products[0].Buyer)
	require.Equal(t, buyer.ID, report.Sellers[0].Products[0].Buyer.ID)
	require.Len(t, report.Buyers, 1)
	require.Len(t, report.Buyers[0].PurchasedProducts, 1)
	require.Equal(t, p.ID, report.Buyers[0].PurchasedProducts[0].ID)
}

func TestProductsBought(t *testing.T) {
	db := newMemDB()
	seller := db.addUser("Sam", "sam@example.com", model.RoleSeller)
	buyer := db.addUser("Bea", "bea@example.com", model.RoleBuyer)
	p1 := db.addProduct(seller.ID, "Lamp", 100)
	p2 := db.addProduct(seller.ID, "Chair", 60)
	svc := newUserService(db)
	products := newProductService(db, nil)

	_, err := svc.ProductsBought(context.Background(), 0)
	require.Equal(t, KindValidation, KindOf(err))
	_, err = svc.ProductsBought(context.Background(), 999)
	require.Equal(t, KindNotFound, KindOf(err))

	buyerCaller := Caller{ID: buyer.ID, Role: buyer.Role}
	_, err = products.Buy(context.Background(), buyerCaller, p1.ID)
	require.NoError(t, err)
	_, err = products.Buy(context.Background(), buyerCaller, p2.ID)
	require.NoError(t, err)

	bought, err := svc.ProductsBought(context.Background(), buyer.ID)
	require.NoError(t, err)
	require.Len(t, bought, 2)
	require.Equal(t, p1.ID, bought[0].ID)
	require.Equal(t, p2.ID, bought[1].ID)
	require.Equal(t, "Sam", bought[0].Seller.Name)
}

func TestProductsCreated(t *testing.T) {
	db := newMemDB()
	seller := db.addUser("Sam", "sam@example.com", model.RoleSeller)
	db.addProduct(seller.ID, "Lamp", 100)
	svc := newUserService(db)

	_, err := svc.ProductsCreated(context.Background(), 0)
	require.Equal(t, KindValidation, KindOf(err))

	created, err := svc.ProductsCreated(context.Background(), seller.ID)
	require.NoError(t, err)
	require.Len(t, created, 1)
	require.Nil(t, created[0].Buyer)
}

func TestDeleteUserAdminOnly(t *testing.T) {
	db := newMemDB()
	admin := db.addUser("Ada", "ada@example.com", model.RoleAdmin)
	victim := db.addUser("Sam", "sam@example.com", model.RoleSeller)
	svc := newUserService(db)

	err := svc.DeleteUser(context.Background(), Caller{ID: victim.ID, Role: victim.Role}, victim.ID)
	require.Equal(t, KindForbidden, KindOf(err))

	adminCaller := Caller{ID: admin.ID, Role: admin.Role}
	require.NoError(t, svc.DeleteUser(context.Background(), adminCaller, victim.ID))

	err = svc.DeleteUser(context.Background(), adminCaller, victim.ID)
	require.Equal(t, KindNotFound, KindOf(err))
}
