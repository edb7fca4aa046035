package main

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/discount-catalog/internal/domain/entity"
	"github.com/oksasatya/discount-catalog/internal/domain/repository"
	"github.com/oksasatya/discount-catalog/internal/infrastructure/restapi"
	"github.com/oksasatya/discount-catalog/pkg/helpers"
)

type fakeUsers struct {
	repository.UserRepository
	info *entity.UserInfo
	err  error
}

func (f *fakeUsers) Login(context.Context, entity.Credentials) (*entity.UserInfo, error) {
	return f.info, f.err
}

type fakeDiscounts struct {
	repository.DiscountRepository
	existing []entity.Discount
	created  []string
	token    string
}

func (f *fakeDiscounts) List(_ context.Context, token string) ([]entity.Discount, error) {
	f.token = token
	return f.existing, nil
}

func (f *fakeDiscounts) Create(_ context.Context, _ string, d *entity.Discount) (*entity.Discount, error) {
	f.created = append(f.created, d.Code)
	return d, nil
}

const sample = `
discounts:
  - title: Pizza night
    description: Any large pizza
    code: PIZZA20
    percentOff: 20
    validUntil: "2030-01-01"
    category: Food
  - title: Shoes
    description: Sneakers
    code: RUN50
    percentOff: 50
    validUntil: "2030-06-01"
    category: Clothes
`

func TestLoadFixture(t *testing.T) {
	list, err := loadFixture(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "PIZZA20", list[0].Code)
	assert.Equal(t, 50, list[1].PercentOff)
}

func TestLoadFixtureRejectsInvalid(t *testing.T) {
	_, err := loadFixture(strings.NewReader(strings.Replace(sample, "percentOff: 50", "percentOff: 100", 1)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "percentOff must be between 1 and 99")

	_, err = loadFixture(strings.NewReader("discounts:\n  - titel: typo\n"))
	assert.Error(t, err)
}

func TestSeederSkipsExistingCodes(t *testing.T) {
	list, err := loadFixture(strings.NewReader(sample))
	require.NoError(t, err)

	discounts := &fakeDiscounts{existing: []entity.Discount{{Code: "pizza20"}}}
	s := &seeder{
		Users:     &fakeUsers{info: &entity.UserInfo{IsAdmin: true, Token: "tok"}},
		Discounts: discounts,
		Logger:    helpers.NewNopLogger(),
	}
	n, err := s.Run(context.Background(), entity.Credentials{Email: "admin@example.com"}, list)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"RUN50"}, discounts.created)
	assert.Equal(t, "tok", discounts.token)
}

func TestSeederDryRunAndNonAdmin(t *testing.T) {
	list, err := loadFixture(strings.NewReader(sample))
	require.NoError(t, err)

	discounts := &fakeDiscounts{}
	s := &seeder{Users: &fakeUsers{info: &entity.UserInfo{IsAdmin: true}}, Discounts: discounts, DryRun: true}
	n, err := s.Run(context.Background(), entity.Credentials{}, list)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, discounts.created)

	s.Users = &fakeUsers{info: &entity.UserInfo{}}
	_, err = s.Run(context.Background(), entity.Credentials{Email: "user@example.com"}, list)
	assert.EqualError(t, err, "user@example.com is not an administrator")

	s.Users = &fakeUsers{err: &restapi.APIError{Status: 401, Message: "Invalid email or password"}}
	_, err = s.Run(context.Background(), entity.Credentials{Email: "x@example.com"}, list)
	assert.ErrorContains(t, err, "Invalid email or password")
}
