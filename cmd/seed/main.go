// seed genera un script SQL para poblar el backend postgres con una empresa,
// su usuario administrador y el catálogo inicial (productos, clientes, proveedores)
// a partir de un archivo JSON.
//
// Uso: go run ./cmd/seed [seed.json] [salida.sql]
// Por defecto lee seed.json del directorio actual y escribe en stdout.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type seedFile struct {
	Company struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"company"`
	Admin struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Role     string `json:"role"`
	} `json:"admin"`
	Products  []seedProduct `json:"products"`
	Customers []seedParty   `json:"customers"`
	Suppliers []seedParty   `json:"suppliers"`
}

// seedProduct los precios son opcionales e independientes, como en el catálogo real.
type seedProduct struct {
	ID          string `json:"id"`
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	UnitPrice   string `json:"unit_price"`
	SalePrice   string `json:"sale_price"`
	Stock       string `json:"stock"`
}

type seedParty struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func main() {
	inPath := "seed.json"
	if len(os.Args) > 1 {
		inPath = os.Args[1]
	}
	raw, err := os.ReadFile(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer %s: %v\n", inPath, err)
		os.Exit(1)
	}
	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar JSON: %v\n", err)
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if len(os.Args) > 2 {
		f, err := os.Create(os.Args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if err := writeSQL(out, &seed, hashPassword); err != nil {
		fmt.Fprintf(os.Stderr, "Generar SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Generado: empresa %s, %d productos, %d clientes, %d proveedores\n",
		seed.Company.ID, len(seed.Products), len(seed.Customers), len(seed.Suppliers))
}

func hashPassword(p string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(p), bcrypt.DefaultCost)
	return string(h), err
}

// writeSQL escribe los INSERT idempotentes. Los ids vacíos se generan.
func writeSQL(out io.Writer, seed *seedFile, hash func(string) (string, error)) error {
	if seed.Company.Name == "" {
		return fmt.Errorf("company.name es obligatorio")
	}
	if seed.Admin.Email == "" || seed.Admin.Password == "" {
		return fmt.Errorf("admin.email y admin.password son obligatorios")
	}
	if seed.Company.ID == "" {
		seed.Company.ID = uuid.New().String()
	}
	if seed.Admin.Role == "" {
		seed.Admin.Role = "admin"
	}
	pwHash, err := hash(seed.Admin.Password)
	if err != nil {
		return fmt.Errorf("hash de contraseña: %w", err)
	}

	var b strings.Builder
	b.WriteString("-- Datos iniciales del backend postgres\n\n")

	b.WriteString("-- 1. Empresa y administrador\n")
	fmt.Fprintf(&b, "INSERT INTO companies (id, name) VALUES (%s, %s)\nON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name;\n",
		quote(seed.Company.ID), quote(seed.Company.Name))
	fmt.Fprintf(&b, "INSERT INTO users (id, company_id, email, password_hash, name, role) VALUES (%s, %s, %s, %s, %s, %s)\nON CONFLICT (email) DO NOTHING;\n\n",
		quote(uuid.New().String()), quote(seed.Company.ID), quote(strings.ToLower(seed.Admin.Email)),
		quote(pwHash), quote(seed.Admin.Name), quote(seed.Admin.Role))

	b.WriteString("-- 2. Productos\n")
	for _, p := range seed.Products {
		if p.Name == "" {
			return fmt.Errorf("producto sin nombre (sku %q)", p.SKU)
		}
		amounts := make([]string, 0, 4)
		for _, v := range []string{p.Price, p.UnitPrice, p.SalePrice, p.Stock} {
			lit, err := numeric(v)
			if err != nil {
				return fmt.Errorf("producto %q: %w", p.Name, err)
			}
			amounts = append(amounts, lit)
		}
		fmt.Fprintf(&b, "INSERT INTO products (id, company_id, sku, name, description, price, unit_price, sale_price, stock) VALUES (%s, %s, %s, %s, %s, %s)\nON CONFLICT (id) DO NOTHING;\n",
			quote(orNewID(p.ID)), quote(seed.Company.ID), quote(p.SKU), quote(p.Name), quote(p.Description), strings.Join(amounts, ", "))
	}

	for _, group := range []struct {
		table   string
		parties []seedParty
	}{{"customers", seed.Customers}, {"suppliers", seed.Suppliers}} {
		fmt.Fprintf(&b, "\n-- %s\n", group.table)
		for _, p := range group.parties {
			if p.Name == "" {
				return fmt.Errorf("%s: registro sin nombre", group.table)
			}
			fmt.Fprintf(&b, "INSERT INTO %s (id, company_id, name, tax_id, email, phone) VALUES (%s, %s, %s, %s, %s, %s)\nON CONFLICT (id) DO NOTHING;\n",
				group.table, quote(orNewID(p.ID)), quote(seed.Company.ID), quote(p.Name), quote(p.TaxID), quote(p.Email), quote(p.Phone))
		}
	}

	_, err = io.WriteString(out, b.String())
	return err
}

// numeric literal NUMERIC o NULL si el valor viene vacío.
func numeric(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "NULL", nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return "", fmt.Errorf("monto inválido %q", v)
	}
	return d.String(), nil
}

func orNewID(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
