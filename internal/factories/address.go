package factories

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/chrisdamba/commutetracker/internal/models"
	"github.com/jaswdr/faker"
)

var fake = faker.New()

type AddressFactory struct {
	fake faker.Faker
}

// NewAddressFactory returns a factory; a non-zero seed makes the output reproducible.
func NewAddressFactory(seed int64) *AddressFactory {
	if seed == 0 {
		return &AddressFactory{fake: fake}
	}
	return &AddressFactory{fake: faker.NewWithSeed(rand.NewSource(seed))}
}

func (af *AddressFactory) CreateAddress() models.Address {
	a := af.fake.Address()
	return models.Address{
		Address: fmt.Sprintf("%s, %s, %s %s", a.StreetAddress(), a.City(), a.StateAbbr(), a.PostCode()),
	}
}

func (af *AddressFactory) CreateAddresses(n int) []models.Address {
	out := make([]models.Address, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, af.CreateAddress())
	}
	return out
}

// WriteAddresses writes addrs in the input format the drive and transit commands read.
func WriteAddresses(w io.Writer, addrs []models.Address) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"address"}); err != nil {
		return err
	}
	for _, a := range addrs {
		if err := cw.Write([]string{a.Address}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteAddressFile(path string, addrs []models.Address) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write addresses: %w", err)
	}
	if err := WriteAddresses(f, addrs); err != nil {
		_ = f.Close()
		return fmt.Errorf("write addresses: %w", err)
	}
	return f.Close()
}
