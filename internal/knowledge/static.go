package knowledge

// Static FMCG knowledge seeded at startup. Keys are uppercase aliases; many
// aliases map to one brand identity.

func staticBrands() map[string]BrandInfo {
	return map[string]BrandInfo{
		// Beverages - PepsiCo
		"PEPSI":        {Name: "Pepsi", Category: "Beverages", Manufacturer: "PepsiCo"},
		"PEP":          {Name: "Pepsi", Category: "Beverages", Manufacturer: "PepsiCo"},
		"MOUNTAIN DEW": {Name: "Mountain Dew", Category: "Beverages", Manufacturer: "PepsiCo"},
		"MTN DEW":      {Name: "Mountain Dew", Category: "Beverages", Manufacturer: "PepsiCo"},
		"MTN":          {Name: "Mountain", Category: "Beverages", Manufacturer: "PepsiCo"},
		"DEW":          {Name: "Dew", Category: "Beverages", Manufacturer: "PepsiCo"},
		"GATORADE":     {Name: "Gatorade", Category: "Beverages", Manufacturer: "PepsiCo"},
		"GAT":          {Name: "Gatorade", Category: "Beverages", Manufacturer: "PepsiCo"},
		"AQUAFINA":     {Name: "Aquafina", Category: "Beverages", Manufacturer: "PepsiCo"},
		"AQF":          {Name: "Aquafina", Category: "Beverages", Manufacturer: "PepsiCo"},

		// Beverages - Coca-Cola
		"COCA-COLA": {Name: "Coca-Cola", Category: "Beverages", Manufacturer: "The Coca-Cola Company"},
		"COCA COLA": {Name: "Coca-Cola", Category: "Beverages", Manufacturer: "The Coca-Cola Company"},
		"COKE":      {Name: "Coca-Cola", Category: "Beverages", Manufacturer: "The Coca-Cola Company"},
		"CC":        {Name: "Coca-Cola", Category: "Beverages", Manufacturer: "The Coca-Cola Company"},
		"SPRITE":    {Name: "Sprite", Category: "Beverages", Manufacturer: "The Coca-Cola Company"},
		"SPR":       {Name: "Sprite", Category: "Beverages", Manufacturer: "The Coca-Cola Company"},
		"FANTA":     {Name: "Fanta", Category: "Beverages", Manufacturer: "The Coca-Cola Company"},
		"FNT":       {Name: "Fanta", Category: "Beverages", Manufacturer: "The Coca-Cola Company"},
		"DASANI":    {Name: "Dasani", Category: "Beverages", Manufacturer: "The Coca-Cola Company"},
		"DAS":       {Name: "Dasani", Category: "Beverages", Manufacturer: "The Coca-Cola Company"},

		// Oral care
		"CREST":     {Name: "Crest", Category: "Oral Care", Manufacturer: "Procter & Gamble"},
		"CR":        {Name: "Crest", Category: "Oral Care", Manufacturer: "Procter & Gamble"},
		"CRST":      {Name: "Crest", Category: "Oral Care", Manufacturer: "Procter & Gamble"},
		"COLGATE":   {Name: "Colgate", Category: "Oral Care", Manufacturer: "Colgate-Palmolive"},
		"CG":        {Name: "Colgate", Category: "Oral Care", Manufacturer: "Colgate-Palmolive"},
		"CLG":       {Name: "Colgate", Category: "Oral Care", Manufacturer: "Colgate-Palmolive"},
		"SENSODYNE": {Name: "Sensodyne", Category: "Oral Care", Manufacturer: "GSK"},
		"SN":        {Name: "Sensodyne", Category: "Oral Care", Manufacturer: "GSK"},
		"SENS":      {Name: "Sensodyne", Category: "Oral Care", Manufacturer: "GSK"},
		"LISTERINE": {Name: "Listerine", Category: "Oral Care", Manufacturer: "Johnson & Johnson"},
		"LST":       {Name: "Listerine", Category: "Oral Care", Manufacturer: "Johnson & Johnson"},
		"LSTR":      {Name: "Listerine", Category: "Oral Care", Manufacturer: "Johnson & Johnson"},

		// Personal care
		"HEAD & SHOULDERS":   {Name: "Head & Shoulders", Category: "Personal Care", Manufacturer: "Procter & Gamble"},
		"HEAD AND SHOULDERS": {Name: "Head & Shoulders", Category: "Personal Care", Manufacturer: "Procter & Gamble"},
		"H&S":                {Name: "Head & Shoulders", Category: "Personal Care", Manufacturer: "Procter & Gamble"},
		"HS":                 {Name: "Head & Shoulders", Category: "Personal Care", Manufacturer: "Procter & Gamble"},
		"PANTENE":            {Name: "Pantene", Category: "Personal Care", Manufacturer: "Procter & Gamble"},
		"PAN":                {Name: "Pantene", Category: "Personal Care", Manufacturer: "Procter & Gamble"},
		"PANT":               {Name: "Pantene", Category: "Personal Care", Manufacturer: "Procter & Gamble"},
		"OLD SPICE":          {Name: "Old Spice", Category: "Personal Care", Manufacturer: "Procter & Gamble"},
		"OS":                 {Name: "Old Spice", Category: "Personal Care", Manufacturer: "Procter & Gamble"},
		"SECRET":             {Name: "Secret", Category: "Personal Care", Manufacturer: "Procter & Gamble"},
		"SCR":                {Name: "Secret", Category: "Personal Care", Manufacturer: "Procter & Gamble"},
		"SCRT":               {Name: "Secret", Category: "Personal Care", Manufacturer: "Procter & Gamble"},
		"DOVE":               {Name: "Dove", Category: "Personal Care", Manufacturer: "Unilever"},
		"DV":                 {Name: "Dove", Category: "Personal Care", Manufacturer: "Unilever"},
		"DOV":                {Name: "Dove", Category: "Personal Care", Manufacturer: "Unilever"},
		"AXE":                {Name: "Axe", Category: "Personal Care", Manufacturer: "Unilever"},
		"DEGREE":             {Name: "Degree", Category: "Personal Care", Manufacturer: "Unilever"},
		"DEG":                {Name: "Degree", Category: "Personal Care", Manufacturer: "Unilever"},

		// Household
		"TIDE":      {Name: "Tide", Category: "Household", Manufacturer: "Procter & Gamble"},
		"TD":        {Name: "Tide", Category: "Household", Manufacturer: "Procter & Gamble"},
		"TDE":       {Name: "Tide", Category: "Household", Manufacturer: "Procter & Gamble"},
		"GAIN":      {Name: "Gain", Category: "Household", Manufacturer: "Procter & Gamble"},
		"GN":        {Name: "Gain", Category: "Household", Manufacturer: "Procter & Gamble"},
		"DAWN":      {Name: "Dawn", Category: "Household", Manufacturer: "Procter & Gamble"},
		"DWN":       {Name: "Dawn", Category: "Household", Manufacturer: "Procter & Gamble"},
		"PALMOLIVE": {Name: "Palmolive", Category: "Household", Manufacturer: "Colgate-Palmolive"},
		"PLM":       {Name: "Palmolive", Category: "Household", Manufacturer: "Colgate-Palmolive"},
		"PERSIL":    {Name: "Persil", Category: "Household", Manufacturer: "Henkel"},
		"PRS":       {Name: "Persil", Category: "Household", Manufacturer: "Henkel"},

		// Snacks
		"LAYS":        {Name: "Lay's", Category: "Snacks", Manufacturer: "PepsiCo"},
		"LAY'S":       {Name: "Lay's", Category: "Snacks", Manufacturer: "PepsiCo"},
		"LAY":         {Name: "Lay's", Category: "Snacks", Manufacturer: "PepsiCo"},
		"DORITOS":     {Name: "Doritos", Category: "Snacks", Manufacturer: "PepsiCo"},
		"DOR":         {Name: "Doritos", Category: "Snacks", Manufacturer: "PepsiCo"},
		"TOSTITOS":    {Name: "Tostitos", Category: "Snacks", Manufacturer: "PepsiCo"},
		"TOS":         {Name: "Tostitos", Category: "Snacks", Manufacturer: "PepsiCo"},
		"PRINGLES":    {Name: "Pringles", Category: "Snacks", Manufacturer: "Kellogg's"},
		"PRG":         {Name: "Pringles", Category: "Snacks", Manufacturer: "Kellogg's"},
		"OREO":        {Name: "Oreo", Category: "Snacks", Manufacturer: "Mondelez"},
		"ORO":         {Name: "Oreo", Category: "Snacks", Manufacturer: "Mondelez"},
		"CHIPS AHOY":  {Name: "Chips Ahoy!", Category: "Snacks", Manufacturer: "Mondelez"},
		"CHIPS AHOY!": {Name: "Chips Ahoy!", Category: "Snacks", Manufacturer: "Mondelez"},
		"CHP":         {Name: "Chips Ahoy!", Category: "Snacks", Manufacturer: "Mondelez"},
	}
}

func staticAbbreviations() map[string]string {
	return map[string]string{
		// Product descriptors
		"ORIG":     "Original",
		"ORG":      "Original",
		"ORGNL":    "Original",
		"WHT":      "White",
		"WHTN":     "Whitening",
		"WHTNG":    "Whitening",
		"CLN":      "Clean",
		"FRSH":     "Fresh",
		"FRS":      "Fresh",
		"ADV":      "Advanced",
		"ADVNC":    "Advanced",
		"ULT":      "Ultra",
		"ULTR":     "Ultra",
		"GNTL":     "Gentle",
		"GNT":      "Gentle",
		"RDNT":     "Radiant",
		"RAD":      "Radiant",
		"PRO":      "Pro",
		"PRHLTH":   "Pro-Health",
		"PROHLTH":  "Pro-Health",
		"TOTL":     "Total",
		"TTL":      "Total",
		"TOT":      "Total",
		"CLNC":     "Clinical",
		"CLNCL":    "Clinical",
		"DLY":      "Daily",
		"MSTR":     "Moisture",
		"MOIST":    "Moisture",
		"RNWL":     "Renewal",
		"RENWL":    "Renewal",
		"CLS":      "Classic",
		"CLSC":     "Classic",
		"CMFRT":    "Comfort",
		"COMF":     "Comfort",
		"CL":       "Cool",
		"RSH":      "Rush",
		"MTN SNS":  "Motion Sense",
		"ARCT":     "Arctic",
		"ARCTC":    "Arctic",
		"MNT":      "Mint",
		"MINT":     "Mint",
		"LMN":      "Lemon",
		"LIME":     "Lime",
		"ORNG":     "Orange",
		"ORN":      "Orange",
		"ZRO":      "Zero",
		"ZERO":     "Zero",
		"SGR":      "Sugar",
		"SGAR":     "Sugar",
		"FRE":      "Free",
		"FREE":     "Free",
		"PRFD":     "Purified",
		"PURE":     "Purified",
		"WTR":      "Water",
		"2IN1":     "2-in-1",
		"2N1":      "2-in-1",
		"PROV":     "Pro-V",
		"PRV":      "Pro-V",
		"SWGR":     "Swagger",
		"FJI":      "Fiji",
		"APLL":     "Apollo",
		"APLO":     "Apollo",
		"CMPL":     "Complete",
		"COMPLT":   "Complete",
		"BBQ":      "BBQ",
		"SR CRM":   "Sour Cream",
		"SRCM":     "Sour Cream",
		"SR":       "Sour",
		"CRM":      "Cream",
		"ONION":    "Onion",
		"ONIN":     "Onion",
		"NCH":      "Nacho",
		"NCHO":     "Nacho",
		"CHS":      "Cheese",
		"CHSE":     "Cheese",
		"RNCH":     "Ranch",
		"RANCH":    "Ranch",
		"DBL":      "Double",
		"DBLE":     "Double",
		"STF":      "Stuf",
		"STUF":     "Stuf",
		"PLTNM":    "Platinum",
		"PLAT":     "Platinum",
		"LQD":      "Liquid",
		"OXI":      "Oxi",
		"PROCLN":   "ProClean",
		"PROCLEAN": "ProClean",
		"CODE":     "Code",
		"RED":      "Red",
		"BLU":      "Blue",
		"GRN":      "Green",
		"3D":       "3D",
		"3DW":      "3D White",
	}
}
