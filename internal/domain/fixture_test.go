package domain

// samplePoints is a small survey with two regions, uneven zones, one null
// kebele and one null zone.
func samplePoints() []Point {
	return []Point{
		{Region: "Oromia", Zone: "Arsi", Woreda: "Tiyo", Kebele: "K01", Lat: 7.95, Lon: 39.12},
		{Region: "Oromia", Zone: "Arsi", Woreda: "Tiyo", Kebele: "K02", Lat: 7.96, Lon: 39.13},
		{Region: "Oromia", Zone: "Arsi", Woreda: "Hetosa", Kebele: "K10", Lat: 8.10, Lon: 39.30},
		{Region: "Oromia", Zone: "Bale", Woreda: "Sinana", Kebele: "K20", Lat: 7.05, Lon: 40.10},
		{Region: "Amhara", Zone: "West Gojam", Woreda: "Bure", Kebele: "K30", Lat: 10.70, Lon: 37.06},
		{Region: "Amhara", Zone: "West Gojam", Woreda: "Bure", Kebele: "", Lat: 10.71, Lon: 37.07},
		{Region: "Amhara", Zone: "", Woreda: "Dangila", Kebele: "K40", Lat: 11.26, Lon: 36.83},
		{Region: "Oromia", Zone: "Arsi", Woreda: "Tiyo", Kebele: "K01", Lat: 7.97, Lon: 39.14},
	}
}
