package patrol

// Sector is a named patrol area layout.
// '#' cells are walls; '~' cells are ion fields that destroy drones on
// contact and hurt careless pilots.
type Sector struct {
	Name   string
	Layout []string
}

// Sectors holds all built-in patrol areas, in catalog order.
var Sectors = []Sector{
	{
		Name: "relay-station",
		Layout: []string{
			"##############################",
			"#                            #",
			"#   ##                  ##   #",
			"#   ##       ~~         ##   #",
			"#                            #",
			"#         ########           #",
			"#                            #",
			"#   ##        ~~        ##   #",
			"#   ##                  ##   #",
			"#                            #",
			"##############################",
		},
	},
	{
		Name: "asteroid-yard",
		Layout: []string{
			"##############################",
			"#          ##                #",
			"#   ~~          ###     ~~   #",
			"#        ##                  #",
			"#               ~~    ##     #",
			"#   ###                      #",
			"#          ~~        ###     #",
			"#    ##         ##           #",
			"#                       ~~   #",
			"#       ~~   ##              #",
			"##############################",
		},
	},
	{
		Name: "dark-annex",
		Layout: []string{
			"##############################",
			"#      #          #          #",
			"#  ~~  #   ~~     #    ~~    #",
			"#      #          #          #",
			"#  #####   ########    ####  #",
			"#                            #",
			"#  ####    ########   #####  #",
			"#      #          #          #",
			"#  ~~  #    ~~    #    ~~    #",
			"#      #          #          #",
			"##############################",
		},
	},
}

// SectorCount returns the number of built-in sectors.
func SectorCount() int {
	return len(Sectors)
}

// SectorByName finds a sector by name, or nil if unknown.
func SectorByName(name string) *Sector {
	for i := range Sectors {
		if Sectors[i].Name == name {
			return &Sectors[i]
		}
	}
	return nil
}

// SectorNames returns the names of all sectors in catalog order.
func SectorNames() []string {
	names := make([]string, len(Sectors))
	for i, s := range Sectors {
		names[i] = s.Name
	}
	return names
}
