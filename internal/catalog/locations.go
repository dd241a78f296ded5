package catalog

import "strings"

type City struct {
	Name       string   `json:"name"`
	Localities []string `json:"localities"`
}

type State struct {
	Name   string `json:"name"`
	Cities []City  `json:"cities"`
}

// locations is the state -> city -> locality tree behind the cascading
// location pickers. Order is display order.
var locations = []State{
	{
		Name:   "Lagos",
		Cities: []City{
			{Name: "Lagos Island", Localities: []string{"Victoria Island", "Ikoyi", "Lekki Phase 1", "Banana Island", "Eko Atlantic", "Oniru", "Marina", "Obalende"}},
			{Name: "Lagos Mainland", Localities: []string{"Yaba", "Surulere", "Ikeja", "Ikeja GRA", "Maryland", "Ogba", "Gbagada", "Magodo", "Ogudu", "Anthony Village"}},
			{Name: "Ikorodu", Localities: []string{"Ikorodu Town", "Igbogbo", "Ijede", "Imota", "Agric"}},
			{Name: "Ajah", Localities: []string{"Ajah", "Sangotedo", "Lekki Phase 2", "Abraham Adesanya", "Ogombo", "Badore"}},
			{Name: "Epe", Localities: []string{"Epe Town", "Ibeju-Lekki", "Eleko", "Awoyaya"}},
		},
	},
	{
		Name:   "Abuja",
		Cities: []City{
			{Name: "Central Area", Localities: []string{"Maitama", "Asokoro", "Wuse", "Wuse 2", "Garki", "Jabi", "Utako", "Guzape", "Life Camp", "Katampe"}},
			{Name: "Gwarinpa", Localities: []string{"Gwarinpa", "Dawaki", "Kubwa", "Dutse"}},
			{Name: "Lugbe", Localities: []string{"Lugbe", "Airport Road", "Sauka"}},
			{Name: "Gwagwalada", Localities: []string{"Gwagwalada", "Dobi"}},
			{Name: "Kuje", Localities: []string{"Kuje", "Coko"}},
		},
	},
	{
		Name:   "Rivers",
		Cities: []City{
			{Name: "Port Harcourt", Localities: []string{"GRA Phase 1", "GRA Phase 2", "Old GRA", "New GRA", "Trans Amadi", "Peter Odili Road", "Rumuola", "Rumuokoro", "D-Line", "Elekahia"}},
			{Name: "Obio", Localities: []string{"Rumuigbo", "Rumuokwuta", "Rukpokwu"}},
			{Name: "Bonny", Localities: []string{"Bonny Island", "Finima"}},
		},
	},
	{
		Name:   "Kano",
		Cities: []City{
			{Name: "Kano Municipal", Localities: []string{"Nassarawa GRA", "Bompai", "Sabon Gari", "Fagge", "Gyadi Gyadi"}},
			{Name: "Ungogo", Localities: []string{"Ungogo", "Bachirawa"}},
		},
	},
	{
		Name:   "Oyo",
		Cities: []City{
			{Name: "Ibadan", Localities: []string{"Bodija", "Ring Road", "Iyaganku GRA", "Old Bodija", "New Bodija", "Jericho", "Agodi GRA", "Dugbe", "Challenge", "Mokola"}},
			{Name: "Oyo Town", Localities: []string{"Oyo Town", "Isale Oyo"}},
		},
	},
	{
		Name:   "Delta",
		Cities: []City{
			{Name: "Warri", Localities: []string{"GRA Warri", "Effurun", "Ekpan", "Enerhen"}},
			{Name: "Asaba", Localities: []string{"GRA Asaba", "Okpanam", "Cable Point"}},
		},
	},
	{
		Name:   "Enugu",
		Cities: []City{
			{Name: "Enugu City", Localities: []string{"Independence Layout", "GRA Enugu", "Trans Ekulu", "New Haven", "Coal Camp", "Achara Layout"}},
			{Name: "Nsukka", Localities: []string{"Nsukka Town", "University of Nigeria"}},
		},
	},
	{
		Name:   "Kaduna",
		Cities: []City{
			{Name: "Kaduna City", Localities: []string{"Barnawa", "Malali", "Sabon Tasha", "Ungwan Rimi", "Tudun Wada"}},
			{Name: "Zaria", Localities: []string{"Samaru", "Sabon Gari Zaria"}},
		},
	},
	{
		Name:   "Anambra",
		Cities: []City{
			{Name: "Awka", Localities: []string{"Awka GRA", "Amawbia", "Nibo"}},
			{Name: "Onitsha", Localities: []string{"Onitsha GRA", "Fegge", "3-3"}},
		},
	},
	{
		Name:   "Edo",
		Cities: []City{
			{Name: "Benin City", Localities: []string{"GRA Benin", "Ring Road Benin", "Uselu", "Ugbowo", "Sapele Road"}},
			{Name: "Ekpoma", Localities: []string{"Ekpoma Town", "AAU Area"}},
		},
	},
	{
		Name:   "Cross River",
		Cities: []City{
			{Name: "Calabar", Localities: []string{"State Housing", "Diamond Hill", "Marian Road", "Satellite Town"}},
		},
	},
	{
		Name:   "Imo",
		Cities: []City{
			{Name: "Owerri", Localities: []string{"New Owerri", "World Bank", "Prefab", "Ikenegbu"}},
		},
	},
	{
		Name:   "Ogun",
		Cities: []City{
			{Name: "Abeokuta", Localities: []string{"Ibara GRA", "Oke Mosan", "Kuto"}},
			{Name: "Ijebu", Localities: []string{"Ijebu Ode", "Ijebu Igbo"}},
		},
	},
	{
		Name:   "Kwara",
		Cities: []City{
			{Name: "Ilorin", Localities: []string{"GRA Ilorin", "Tanke", "Fate", "Challenge Ilorin"}},
		},
	},
}

// States lists the known states.
func States() []string {
	out := make([]string, 0, len(locations))
	for _, s := range locations {
		out = append(out, s.Name)
	}
	return out
}

// Cities lists the cities of a state, or nothing for an unknown state.
func Cities(state string) []string {
	st, ok := findState(state)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(st.Cities))
	for _, c := range st.Cities {
		out = append(out, c.Name)
	}
	return out
}

// Localities lists the localities of a city, or nothing when either key is unknown.
func Localities(state, city string) []string {
	c, ok := findCity(state, city)
	if !ok {
		return []string{}
	}
	return append([]string(nil), c.Localities...)
}

// ValidLocation reports whether the triple exists in the tree. An empty
// locality only checks state and city.
func ValidLocation(state, city, locality string) bool {
	c, ok := findCity(state, city)
	if !ok {
		return false
	}
	if locality == "" {
		return true
	}
	for _, l := range c.Localities {
		if strings.EqualFold(l, locality) {
			return true
		}
	}
	return false
}

// Tree returns a copy of the whole lookup tree.
func Tree() []State {
	out := make([]State, len(locations))
	for i, s := range locations {
		cities := make([]City, len(s.Cities))
		for j, c := range s.Cities {
			cities[j] = City{Name: c.Name, Localities: append([]string(nil), c.Localities...)}
		}
		out[i] = State{Name: s.Name, Cities: cities}
	}
	return out
}

func findState(name string) (State, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return State{}, false
	}
	for _, s := range locations {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return State{}, false
}

func findCity(state, city string) (City, bool) {
	st, ok := findState(state)
	if !ok {
		return City{}, false
	}
	city = strings.TrimSpace(city)
	for _, c := range st.Cities {
		if strings.EqualFold(c.Name, city) {
			return c, true
		}
	}
	return City{}, false
}
