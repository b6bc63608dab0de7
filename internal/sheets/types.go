package sheets

import "strconv"

// Location is one physical store.
type Location struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Address     string      `json:"address"`
	Phone       string      `json:"phone"`
	Hours       Hours       `json:"hours"`
	Coordinates Coordinates `json:"coordinates"`
	Image       string      `json:"image"`
	Description string      `json:"description"`
}

// Hours splits opening times into weekday and weekend windows.
type Hours struct {
	Weekday string `json:"weekday"`
	Weekend string `json:"weekend"`
}

// Coordinates is a map pin.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Category is a curated storefront category tile.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Image string `json:"image"`
}

// FAQ is one question/answer pair.
type FAQ struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

func locationFromRow(row Row) Location {
	return Location{
		ID:      row["id"],
		Name:    row["name"],
		Address: row["address"],
		Phone:   row["phone"],
		Hours: Hours{
			Weekday: row["hoursWeekday"],
			Weekend: row["hoursWeekend"],
		},
		Coordinates: Coordinates{
			Lat: parseFloat(row["lat"]),
			Lng: parseFloat(row["lng"]),
		},
		Image:       row["image"],
		Description: row["description"],
	}
}

func categoryFromRow(row Row) Category {
	return Category{
		ID:    row["id"],
		Name:  row["name"],
		Icon:  row["icon"],
		Image: row["image"],
	}
}

func faqFromRow(row Row) FAQ {
	return FAQ{
		ID:       row["id"],
		Question: row["question"],
		Answer:   row["answer"],
		Category: row["category"],
	}
}

func parseFloat(value string) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}
