package catalog

type Region string

const (
	RegionCONMEBOL Region = "CONMEBOL"
	RegionUEFA     Region = "UEFA"
	RegionCONCACAF Region = "CONCACAF"
	RegionCAF      Region = "CAF"
	RegionAFC      Region = "AFC"
)

func (r Region) Valid() bool {
	switch r {
	case RegionCONMEBOL, RegionUEFA, RegionCONCACAF, RegionCAF, RegionAFC:
		return true
	}
	return false
}

// Team is never mutated after the catalog is loaded.
type Team struct {
	ID       int    `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Code     string `json:"code" yaml:"code"`
	Flag     string `json:"flag" yaml:"flag"`
	Seed     int    `json:"seed" yaml:"seed"`
	Region   Region `json:"region" yaml:"region"`
	FIFARank int    `json:"fifa_rank" yaml:"fifa_rank"`
}

// defaultTeams is the World Cup 2026 play-in roster, seed order.
var defaultTeams = []Team{
	{ID: 1, Name: "Brazil", Code: "BRA", Flag: "🇧🇷", Seed: 1, Region: RegionCONMEBOL, FIFARank: 1},
	{ID: 2, Name: "Argentina", Code: "ARG", Flag: "🇦🇷", Seed: 2, Region: RegionCONMEBOL, FIFARank: 2},
	{ID: 3, Name: "France", Code: "FRA", Flag: "🇫🇷", Seed: 3, Region: RegionUEFA, FIFARank: 3},
	{ID: 4, Name: "England", Code: "ENG", Flag: "🇬🇧", Seed: 4, Region: RegionUEFA, FIFARank: 4},
	{ID: 5, Name: "Belgium", Code: "BEL", Flag: "🇧🇪", Seed: 5, Region: RegionUEFA, FIFARank: 5},
	{ID: 6, Name: "Netherlands", Code: "NED", Flag: "🇳🇱", Seed: 6, Region: RegionUEFA, FIFARank: 6},
	{ID: 7, Name: "Portugal", Code: "POR", Flag: "🇵🇹", Seed: 7, Region: RegionUEFA, FIFARank: 7},
	{ID: 8, Name: "Spain", Code: "ESP", Flag: "🇪🇸", Seed: 8, Region: RegionUEFA, FIFARank: 8},
	{ID: 9, Name: "Italy", Code: "ITA", Flag: "🇮🇹", Seed: 9, Region: RegionUEFA, FIFARank: 9},
	{ID: 10, Name: "Croatia", Code: "CRO", Flag: "🇭🇷", Seed: 10, Region: RegionUEFA, FIFARank: 10},
	{ID: 11, Name: "Uruguay", Code: "URU", Flag: "🇺🇾", Seed: 11, Region: RegionCONMEBOL, FIFARank: 11},
	{ID: 12, Name: "Morocco", Code: "MAR", Flag: "🇲🇦", Seed: 12, Region: RegionCAF, FIFARank: 12},
	{ID: 13, Name: "Switzerland", Code: "SUI", Flag: "🇨🇭", Seed: 13, Region: RegionUEFA, FIFARank: 13},
	{ID: 14, Name: "USA", Code: "USA", Flag: "🇺🇸", Seed: 14, Region: RegionCONCACAF, FIFARank: 14},
	{ID: 15, Name: "Germany", Code: "GER", Flag: "🇩🇪", Seed: 15, Region: RegionUEFA, FIFARank: 15},
	{ID: 16, Name: "Mexico", Code: "MEX", Flag: "🇲🇽", Seed: 16, Region: RegionCONCACAF, FIFARank: 16},
	{ID: 17, Name: "Senegal", Code: "SEN", Flag: "🇸🇳", Seed: 17, Region: RegionCAF, FIFARank: 17},
	{ID: 18, Name: "Denmark", Code: "DEN", Flag: "🇩🇰", Seed: 18, Region: RegionUEFA, FIFARank: 18},
	{ID: 19, Name: "Japan", Code: "JPN", Flag: "🇯🇵", Seed: 19, Region: RegionAFC, FIFARank: 19},
	{ID: 20, Name: "Poland", Code: "POL", Flag: "🇵🇱", Seed: 20, Region: RegionUEFA, FIFARank: 20},
	{ID: 21, Name: "Colombia", Code: "COL", Flag: "🇨🇴", Seed: 21, Region: RegionCONMEBOL, FIFARank: 21},
	{ID: 22, Name: "Wales", Code: "WAL", Flag: "🏴󠁧󠁢󠁷󠁬󠁳󠁿", Seed: 22, Region: RegionUEFA, FIFARank: 22},
	{ID: 23, Name: "Ukraine", Code: "UKR", Flag: "🇺🇦", Seed: 23, Region: RegionUEFA, FIFARank: 23},
	{ID: 24, Name: "Ecuador", Code: "ECU", Flag: "🇪🇨", Seed: 24, Region: RegionCONMEBOL, FIFARank: 24},
	{ID: 25, Name: "Qatar", Code: "QAT", Flag: "🇶🇦", Seed: 25, Region: RegionAFC, FIFARank: 25},
	{ID: 26, Name: "Canada", Code: "CAN", Flag: "🇨🇦", Seed: 26, Region: RegionCONCACAF, FIFARank: 26},
	{ID: 27, Name: "Ghana", Code: "GHA", Flag: "🇬🇭", Seed: 27, Region: RegionCAF, FIFARank: 27},
	{ID: 28, Name: "Serbia", Code: "SRB", Flag: "🇷🇸", Seed: 28, Region: RegionUEFA, FIFARank: 28},
	{ID: 29, Name: "Cameroon", Code: "CMR", Flag: "🇨🇲", Seed: 29, Region: RegionCAF, FIFARank: 29},
	{ID: 30, Name: "Australia", Code: "AUS", Flag: "🇦🇺", Seed: 30, Region: RegionAFC, FIFARank: 30},
	{ID: 31, Name: "Costa Rica", Code: "CRC", Flag: "🇨🇷", Seed: 31, Region: RegionCONCACAF, FIFARank: 31},
	{ID: 32, Name: "Tunisia", Code: "TUN", Flag: "🇹🇳", Seed: 32, Region: RegionCAF, FIFARank: 32},
	{ID: 33, Name: "Peru", Code: "PER", Flag: "🇵🇪", Seed: 33, Region: RegionCONMEBOL, FIFARank: 33},
	{ID: 34, Name: "Chile", Code: "CHI", Flag: "🇨🇱", Seed: 34, Region: RegionCONMEBOL, FIFARank: 34},
	{ID: 35, Name: "Paraguay", Code: "PAR", Flag: "🇵🇾", Seed: 35, Region: RegionCONMEBOL, FIFARank: 35},
	{ID: 36, Name: "Venezuela", Code: "VEN", Flag: "🇻🇪", Seed: 36, Region: RegionCONMEBOL, FIFARank: 36},
	{ID: 37, Name: "Panama", Code: "PAN", Flag: "🇵🇦", Seed: 37, Region: RegionCONCACAF, FIFARank: 37},
	{ID: 38, Name: "Jamaica", Code: "JAM", Flag: "🇯🇲", Seed: 38, Region: RegionCONCACAF, FIFARank: 38},
	{ID: 39, Name: "Honduras", Code: "HON", Flag: "🇭🇳", Seed: 39, Region: RegionCONCACAF, FIFARank: 39},
	{ID: 40, Name: "El Salvador", Code: "SLV", Flag: "🇸🇻", Seed: 40, Region: RegionCONCACAF, FIFARank: 40},
	{ID: 41, Name: "Egypt", Code: "EGY", Flag: "🇪🇬", Seed: 41, Region: RegionCAF, FIFARank: 41},
	{ID: 42, Name: "Nigeria", Code: "NGA", Flag: "🇳🇬", Seed: 42, Region: RegionCAF, FIFARank: 42},
	{ID: 43, Name: "Algeria", Code: "ALG", Flag: "🇩🇿", Seed: 43, Region: RegionCAF, FIFARank: 43},
	{ID: 44, Name: "Ivory Coast", Code: "CIV", Flag: "🇨🇮", Seed: 44, Region: RegionCAF, FIFARank: 44},
	{ID: 45, Name: "South Korea", Code: "KOR", Flag: "🇰🇷", Seed: 45, Region: RegionAFC, FIFARank: 45},
	{ID: 46, Name: "Iran", Code: "IRN", Flag: "🇮🇷", Seed: 46, Region: RegionAFC, FIFARank: 46},
	{ID: 47, Name: "Saudi Arabia", Code: "KSA", Flag: "🇸🇦", Seed: 47, Region: RegionAFC, FIFARank: 47},
	{ID: 48, Name: "UAE", Code: "UAE", Flag: "🇦🇪", Seed: 48, Region: RegionAFC, FIFARank: 48},
	{ID: 49, Name: "Bolivia", Code: "BOL", Flag: "🇧🇴", Seed: 49, Region: RegionCONMEBOL, FIFARank: 49},
	{ID: 50, Name: "Guatemala", Code: "GTM", Flag: "🇬🇹", Seed: 50, Region: RegionCONCACAF, FIFARank: 50},
	{ID: 51, Name: "Haiti", Code: "HTI", Flag: "🇭🇹", Seed: 51, Region: RegionCONCACAF, FIFARank: 51},
	{ID: 52, Name: "Trinidad & Tobago", Code: "TTO", Flag: "🇹🇹", Seed: 52, Region: RegionCONCACAF, FIFARank: 52},
	{ID: 53, Name: "Mali", Code: "MLI", Flag: "🇲🇱", Seed: 53, Region: RegionCAF, FIFARank: 53},
	{ID: 54, Name: "Burkina Faso", Code: "BFA", Flag: "🇧🇫", Seed: 54, Region: RegionCAF, FIFARank: 54},
	{ID: 55, Name: "DR Congo", Code: "COD", Flag: "🇨🇩", Seed: 55, Region: RegionCAF, FIFARank: 55},
	{ID: 56, Name: "Zambia", Code: "ZMB", Flag: "🇿🇲", Seed: 56, Region: RegionCAF, FIFARank: 56},
	{ID: 57, Name: "China", Code: "CHN", Flag: "🇨🇳", Seed: 57, Region: RegionAFC, FIFARank: 57},
	{ID: 58, Name: "Iraq", Code: "IRQ", Flag: "🇮🇶", Seed: 58, Region: RegionAFC, FIFARank: 58},
	{ID: 59, Name: "Oman", Code: "OMN", Flag: "🇴🇲", Seed: 59, Region: RegionAFC, FIFARank: 59},
	{ID: 60, Name: "Jordan", Code: "JOR", Flag: "🇯🇴", Seed: 60, Region: RegionAFC, FIFARank: 60},
	{ID: 61, Name: "Uzbekistan", Code: "UZB", Flag: "🇺🇿", Seed: 61, Region: RegionAFC, FIFARank: 61},
	{ID: 62, Name: "Vietnam", Code: "VNM", Flag: "🇻🇳", Seed: 62, Region: RegionAFC, FIFARank: 62},
	{ID: 63, Name: "Thailand", Code: "THA", Flag: "🇹🇭", Seed: 63, Region: RegionAFC, FIFARank: 63},
	{ID: 64, Name: "Malaysia", Code: "MYS", Flag: "🇲🇾", Seed: 64, Region: RegionAFC, FIFARank: 64},
}
