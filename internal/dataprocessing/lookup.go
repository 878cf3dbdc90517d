package dataprocessing

import (
	"strings"

	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/pkg/contracts/domain"
)

var branchNames = map[string]string{
	"CS": "Computer Science and Engineering",
	"IT": "Information Technology",
	"EC": "Electronics and Communication Engineering",
	"EE": "Electrical and Electronics Engineering",
	"ME": "Mechanical Engineering",
	"CE": "Civil Engineering",
	"IC": "Instrumentation and Control Engineering",
	"CH": "Chemical Engineering",
	"AE": "Aeronautical Engineering",
	"AU": "Automobile Engineering",
	"PH": "Pharmaceutical Technology",
	"BT": "Biotechnology",
	"PE": "Petroleum Engineering",
	"MT": "Mechatronics",
	"SB": "Software Engineering",
	"CZ": "Cyber Security",
	"MM": "Mining Engineering",
	"EV": "Environmental Engineering",
	"PP": "Production Engineering",
	"AP": "Applied Electronics",
	"CF": "Ceramic Technology",
	"LE": "Leather Technology",
	"FY": "Food Technology",
	"TS": "Textile Technology",
	"MZ": "Marine Engineering",
	"TT": "Telecommunication Engineering",
	"TX": "Textiles",
	"CN": "Construction Engineering",
	"EI": "Electronics and Instrumentation",
	"AL": "Artificial Intelligence",
	"MS": "Medical Electronics",
	"CO": "Computer Engineering",
	"SC": "Software and Computing",
	"PN": "Printing Technology",
	"AS": "Aerospace Engineering",
	"GI": "Geo Informatics",
	"PR": "Production Engineering",
	"RP": "Robotics",
	"PT": "Plastic Technology",
	"MU": "Music Technology",
	"MI": "Metallurgy",
	"MA": "Mathematics and Computing",
	"CJ": "Ceramics and Jewellery",
	"SF": "Safety and Fire Engineering",
	"CL": "Clothing and Fashion",
	"EY": "Energy Engineering",
	"PM": "Polymer Engineering",
	"CC": "Computer and Communication",
	"IE": "Industrial Engineering",
	"BS": "Biomedical Engineering",
	"RA": "Radiology",
	"BP": "Biophysics",
	"BY": "Bioinformatics",
	"IB": "Industrial Biotechnology",
	"AD": "Artificial Intelligence & Data Science",
	"IY": "Information Systems",
	"IS": "Instrumentation",
	"MG": "Management",
	"EM": "Embedded Systems",
	"IM": "Industrial Management",
	"CM": "Computer Engineering (Multimedia)",
	"AT": "Automation",
}

// Zones
const (
	ZoneNorth   = "NORTH"
	ZoneSouth   = "SOUTH"
	ZoneCentral = "CENTRAL"
	ZoneWest    = "WEST"
	ZoneEast    = "EAST"
)

// Several districts appear under more than one spelling in the source.
var districtZones = map[string]string{
	"CHENNAI":      ZoneNorth,
	"THIRUVALLUR":  ZoneNorth,
	"KANCHEEPURAM": ZoneNorth,
	"VELLORE":      ZoneNorth,
	"TIRUPATHUR":   ZoneNorth,
	"RANIPET":      ZoneNorth,
	"THIRUPPATTUR": ZoneNorth,
	"CHENGALPATTU": ZoneNorth,

	"MADURAI":        ZoneSouth,
	"THENI":          ZoneSouth,
	"THOOTHUKUDI":    ZoneSouth,
	"TIRUNELVELI":    ZoneSouth,
	"RAMANATHAPURAM": ZoneSouth,
	"VIRUDHUNAGAR":   ZoneSouth,
	"KANYAKUMARI":    ZoneSouth,
	"SIVAGANGAI":     ZoneSouth,
	"DINDIGUL":       ZoneSouth,
	"TENKASI":        ZoneSouth,

	"TRICHY":          ZoneCentral,
	"KARUR":           ZoneCentral,
	"PUDUKKOTTAI":     ZoneCentral,
	"PERAMBALUR":      ZoneCentral,
	"ARIYALUR":        ZoneCentral,
	"THANJAVUR":       ZoneCentral,
	"THIRUVARUR":      ZoneCentral,
	"NAGAPATTINAM":    ZoneCentral,
	"NAGAPPATTINAM":   ZoneCentral,
	"TIRUCHIRAPPALLI": ZoneCentral,

	"COIMBATORE":   ZoneWest,
	"ERODE":        ZoneWest,
	"NILGIRIS":     ZoneWest,
	"TIRUPPUR":     ZoneWest,
	"TIRUPUR":      ZoneWest,
	"THE NILGIRIS": ZoneWest,

	"SALEM":          ZoneEast,
	"NAMAKKAL":       ZoneEast,
	"DHARMAPURI":     ZoneEast,
	"KRISHNAGIRI":    ZoneEast,
	"CUDDALORE":      ZoneEast,
	"VILLUPURAM":     ZoneEast,
	"MAYILADUTHURAI": ZoneEast,
	"TIRUVANNAMALAI": ZoneEast,
	"KALLAKKURICHI":  ZoneEast,
}

// Districts not listed are rural.
var urbanDistricts = map[string]struct{}{
	"CHENNAI":         {},
	"COIMBATORE":      {},
	"MADURAI":         {},
	"TRICHY":          {},
	"SALEM":           {},
	"TIRUCHIRAPPALLI": {},
	"ERODE":           {},
	"TIRUPPUR":        {},
	"VELLORE":         {},
	"KANCHEEPURAM":    {},
	"THIRUVALLUR":     {},
	"CHENGALPATTU":    {},
	"THOOTHUKUDI":     {},
	"TIRUNELVELI":     {},
	"NAGAPATTINAM":    {},
	"MAYILADUTHURAI":  {},
	"DINDIGUL":        {},
	"KARUR":           {},
}

// BranchName returns the descriptive name of a branch code. Unknown codes
// are returned unchanged.
func BranchName(code string) string {
	if name, ok := branchNames[strings.TrimSpace(code)]; ok {
		return name
	}
	return code
}

// ZoneOf returns the geographic zone of a normalized district name.
func ZoneOf(district string) string {
	if zone, ok := districtZones[district]; ok {
		return zone
	}
	return domain.ZoneUnknown
}

// AreaTypeOf returns URBAN or RURAL for a normalized district name.
func AreaTypeOf(district string) string {
	if _, ok := urbanDistricts[district]; ok {
		return domain.AreaUrban
	}
	return domain.AreaRural
}
