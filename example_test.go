package valtree_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	v "github.com/Gobd/valtree"
)

type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
}

func (u *User) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Bind(&u.Name, v.Required, v.CharLength().Min(1).Max(100)),
		v.Bind(&u.Email, v.Required, v.Email),
		v.Bind(&u.Age, v.Min(0), v.Max(150)),
	}
}

func ExampleValidate() {
	user := &User{Name: "Alice", Email: "alice@example.com", Age: 30}
	if tree := v.Validate(user); tree.IsErr() {
		fmt.Println(tree)
		return
	}
	fmt.Println("valid")
	// Output: valid
}

func ExampleValidate_error() {
	user := &User{Email: "alice", Age: -1}
	fmt.Println(v.Validate(user))
	// Output:
	// .age: range: Number not in range: min=0, value=-1
	// .email: email: Must be a valid email address
	// .name: required: Value is required
}

func ExampleUnmarshalAndValidate() {
	body := []byte(`{"name":"Bob","email":"bob@example.com","age":25}`)
	var user User
	tree, err := v.UnmarshalAndValidate(body, &user)
	if err != nil {
		fmt.Println(err)
		return
	}
	if tree.IsErr() {
		fmt.Println(tree)
		return
	}
	fmt.Println(user.Name)
	// Output: Bob
}

// Person is the record from the package documentation.
type Person struct {
	Nick string   `json:"nick"`
	Age  int      `json:"age"`
	Cars []string `json:"cars"`
}

func alphanumeric(s string) v.Tree {
	return v.ErrorIf(strings.ContainsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}), func() v.Error {
		return v.NewError("alpha_only")
	})
}

func (p *Person) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Bind(&p.Nick, v.Custom(alphanumeric, "letters and digits only"), v.CharLength().Max(30)),
		v.Bind(&p.Age, v.Range().Min(15).Max(100)),
		v.Bind(&p.Cars, v.Length().Max(3), v.Each(v.CharLength().Max(50))),
	}
}

func newPerson() *Person {
	return &Person{
		Nick: "**tom1980**",
		Age:  200,
		Cars: []string{"first", "second", strings.Repeat("third", 11), "fourth"},
	}
}

func ExampleValidate_person() {
	tree := v.Validate(newPerson())
	fmt.Println(tree.IsErr())
	fmt.Println(tree)
	// Output:
	// true
	// .age: range: Number not in range: max=100, min=15, value=200
	// .cars: length: Invalid length: max=3, value=4
	// .cars[2]: char_length: Invalid character length: max=50, value=55
	// .nick: alpha_only
}

func ExampleTree_MarshalJSON() {
	b, err := json.Marshal(v.Validate(newPerson()))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(string(b))
	// Output: {"age":[{"code":"range","message":"Number not in range","params":{"min":15,"max":100,"value":200}}],"cars":{"$errors":[{"code":"length","message":"Invalid length","params":{"max":3,"value":4}}],"$items":{"2":[{"code":"char_length","message":"Invalid character length","params":{"max":50,"value":55}}]}},"nick":[{"code":"alpha_only"}]}
}

// validatePerson builds the same result without rules.
func validatePerson(p *Person) v.Tree {
	return v.Merge(
		v.Field("nick", alphanumeric(p.Nick).Merge(
			v.ErrorIf(len(p.Nick) > 30, func() v.Error { return v.NewError("too_long") }),
		)),
		v.Field("age", v.ErrorIf(p.Age < 15 || p.Age > 100, func() v.Error {
			return v.NewError("range").
				WithMessage("Number not in range").
				WithParam("min", 15).
				WithParam("max", 100).
				WithParam("value", p.Age)
		})),
		v.Field("cars", v.ErrorIf(len(p.Cars) > 3, func() v.Error {
			return v.NewError("length").WithMessage("Invalid length").WithParam("max", 3).WithParam("value", len(p.Cars))
		}).Merge(v.Items(p.Cars, func(_ int, car string) v.Tree {
			return v.ErrorIf(len(car) > 50, func() v.Error {
				return v.NewError("char_length").WithMessage("Invalid character length").WithParam("max", 50).WithParam("value", len(car))
			})
		}))),
	)
}

func ExampleMerge() {
	for _, line := range validatePerson(newPerson()).Lines() {
		fmt.Println(line)
	}
	// Output:
	// .age: range: Number not in range: max=100, min=15, value=200
	// .cars: length: Invalid length: max=3, value=4
	// .cars[2]: char_length: Invalid character length: max=50, value=55
	// .nick: alpha_only
}

func ExampleErrorIf() {
	age := 200
	tree := v.Field("age", v.ErrorIf(age > 150, func() v.Error {
		return v.NewError("range").WithParam("max", 150).WithParam("value", age)
	}))
	fmt.Println(tree)
	// Output: .age: range: max=150, value=200
}

type Event struct {
	StartDate string `json:"start_date"`
}

func (e *Event) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Bind(&e.StartDate, v.Required, v.Date("2006-01-02").
			Min(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)).
			Max(time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC))),
	}
}

func ExampleDate() {
	fmt.Println(v.Validate(&Event{StartDate: "2025-06-15"}).IsValid())
	fmt.Println(v.Validate(&Event{StartDate: "2031-01-01"}))
	// Output:
	// true
	// .start_date: date: Invalid date: layout="2006-01-02", max="2030-12-31", min="2020-01-01"
}

type Payment struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	IsDraft  bool    `json:"-"`
}

func (p *Payment) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Bind(&p.Amount, v.When(!p.IsDraft, "not draft", v.Required, v.Min(0.01)).
			Else(v.Min(0.0))),
		v.Bind(&p.Currency, v.Required, v.In("USD", "EUR", "GBP")),
	}
}

func ExampleWhen() {
	p := &Payment{Amount: 10.00, Currency: "USD"}
	if tree := v.Validate(p); tree.IsErr() {
		fmt.Println(tree)
		return
	}

	b, _ := json.Marshal(p)
	fmt.Println(string(b))
	fmt.Println(v.Validate(&Payment{Currency: "CHF"}))
	// Output:
	// {"amount":10,"currency":"USD"}
	// .amount: required: Value is required
	// .amount: range: Number not in range: min=0.01, value=0
	// .currency: in: Value not allowed: value="CHF"
}
