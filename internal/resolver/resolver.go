package resolver

import "strings"

// surfaceForm maps a Japanese surface form (kanji or kana) to the English
// city name the weather provider accepts.
type surfaceForm struct {
	Surface   string
	Canonical string
}

// englishCities is scanned before the Japanese forms. Order matters: matching
// is greedy first-substring, so a broad entry placed earlier shadows anything
// after it. Do not sort or "clean up" these lists.
var englishCities = []string{
	// Japan
	"tokyo", "osaka", "kyoto", "yokohama", "kobe", "nagoya", "fukuoka", "sapporo", "sendai", "hiroshima",
	"nara", "okinawa", "naha", "kanazawa", "nagasaki", "kagoshima", "shizuoka", "kumamoto", "okayama",
	"niigata", "hamamatsu", "sagamihara", "chiba", "saitama", "kawasaki", "kitakyushu", "sakai",
	// USA/Canada
	"new york", "nyc", "los angeles", "la", "chicago", "houston", "phoenix", "philadelphia",
	"san antonio", "san diego", "dallas", "san jose", "austin", "jacksonville", "fort worth",
	"columbus", "san francisco", "charlotte", "indianapolis", "seattle", "denver", "washington",
	"boston", "el paso", "nashville", "detroit", "oklahoma city", "portland", "las vegas", "memphis",
	"louisville", "baltimore", "milwaukee", "albuquerque", "tucson", "fresno", "sacramento",
	"atlanta", "kansas city", "miami", "raleigh", "omaha", "long beach", "virginia beach",
	"oakland", "minneapolis", "tulsa", "arlington", "tampa", "new orleans", "wichita", "cleveland",
	"bakersfield", "honolulu", "toronto", "vancouver", "montreal", "ottawa", "calgary",
	// Europe
	"london", "paris", "berlin", "madrid", "rome", "kyiv", "bucharest", "vienna", "hamburg",
	"warsaw", "budapest", "barcelona", "munich", "milan", "prague", "sofia", "brussels",
	"birmingham", "cologne", "naples", "stockholm", "turin", "marseille", "amsterdam",
	"zagreb", "valencia", "krakow", "frankfurt", "seville", "zaragoza", "athens", "riga",
	"helsinki", "rotterdam", "stuttgart", "dusseldorf", "glasgow", "copenhagen", "dublin",
	"lisbon", "manchester", "geneva", "zurich", "oslo", "edinburgh", "reykjavik",
	// Asia (Non-Japan)
	"beijing", "shanghai", "seoul", "bangkok", "singapore", "jakarta", "delhi", "mumbai",
	"manila", "taipei", "hanoi", "ho chi minh city", "kuala lumpur", "hong kong", "dubai",
	"istanbul", "dhaka", "karachi", "riyadh", "tel aviv", "doha", "abu dhabi",
	// Oceania
	"sydney", "melbourne", "brisbane", "perth", "adelaide", "auckland", "wellington", "christchurch",
	// South America
	"sao paulo", "buenos aires", "rio de janeiro", "bogota", "lima", "santiago", "caracas",
	// Africa
	"cairo", "lagos", "kinshasa", "johannesburg", "cape town", "casablanca", "nairobi", "addis ababa",
}

// japaneseForms covers kanji and kana variants. Checked only after the
// English list finds nothing.
var japaneseForms = []surfaceForm{
	// --- Japan: major and designated cities ---
	{"東京", "Tokyo"}, {"とうきょう", "Tokyo"}, {"東京都", "Tokyo"},
	{"大阪", "Osaka"}, {"おおさか", "Osaka"}, {"大阪市", "Osaka"},
	{"横浜", "Yokohama"}, {"よこはま", "Yokohama"},
	{"名古屋", "Nagoya"}, {"なごや", "Nagoya"},
	{"札幌", "Sapporo"}, {"さっぽろ", "Sapporo"},
	{"福岡", "Fukuoka"}, {"ふくおか", "Fukuoka"},
	{"神戸", "Kobe"}, {"こうべ", "Kobe"},
	{"京都", "Kyoto"}, {"きょうと", "Kyoto"},
	{"川崎", "Kawasaki"}, {"かわさき", "Kawasaki"},
	{"さいたま", "Saitama"}, {"さいたまし", "Saitama"},
	{"広島", "Hiroshima"}, {"ひろしま", "Hiroshima"},
	{"仙台", "Sendai"}, {"せんだい", "Sendai"},
	{"北九州", "Kitakyushu"}, {"きたきゅうしゅう", "Kitakyushu"},
	{"千葉", "Chiba"}, {"ちば", "Chiba"},
	{"堺", "Sakai"}, {"さかい", "Sakai"},
	{"新潟", "Niigata"}, {"にいがた", "Niigata"},
	{"浜松", "Hamamatsu"}, {"はままつ", "Hamamatsu"},
	{"熊本", "Kumamoto"}, {"くまもと", "Kumamoto"},
	{"相模原", "Sagamihara"}, {"さがみはら", "Sagamihara"},
	{"静岡", "Shizuoka"}, {"しずおか", "Shizuoka"},
	{"岡山", "Okayama"}, {"おかやま", "Okayama"},
	{"鹿児島", "Kagoshima"}, {"かごしま", "Kagoshima"},
	{"八王子", "Hachioji"}, {"はちおうじ", "Hachioji"},
	{"姫路", "Himeji"}, {"ひめじ", "Himeji"},
	{"宇都宮", "Utsunomiya"}, {"うつのみや", "Utsunomiya"},
	{"松山", "Matsuyama"}, {"まつやま", "Matsuyama"},
	{"東大阪", "Higashiosaka"}, {"ひがしおおさか", "Higashiosaka"},
	{"西宮", "Nishinomiya"}, {"にしのみや", "Nishinomiya"},
	{"尼崎", "Amagasaki"}, {"あまがさき", "Amagasaki"},
	{"船橋", "Funabashi"}, {"ふなばし", "Funabashi"},
	{"金沢", "Kanazawa"}, {"かなざわ", "Kanazawa"},
	{"豊田", "Toyota"}, {"とよた", "Toyota"},
	{"高松", "Takamatsu"}, {"たかまつ", "Takamatsu"},
	{"富山", "Toyama"}, {"とやま", "Toyama"},
	{"長崎", "Nagasaki"}, {"ながさき", "Nagasaki"},
	{"岐阜", "Gifu"}, {"ぎふ", "Gifu"},
	{"宮崎", "Miyazaki"}, {"みやざき", "Miyazaki"},
	{"長野", "Nagano"}, {"ながの", "Nagano"},
	{"和歌山", "Wakayama"}, {"わかやま", "Wakayama"},
	{"奈良", "Nara"}, {"なら", "Nara"},
	{"大分", "Oita"}, {"おおいた", "Oita"},
	{"旭川", "Asahikawa"}, {"あさひかわ", "Asahikawa"},
	{"いわき", "Iwaki"}, {"高知", "Kochi"}, {"こうち", "Kochi"},
	{"高崎", "Takasaki"}, {"たかさき", "Takasaki"},
	{"郡山", "Koriyama"}, {"こおりやま", "Koriyama"},
	{"那覇", "Naha"}, {"なは", "Naha"},
	{"川越", "Kawagoe"}, {"かわごえ", "Kawagoe"},
	{"秋田", "Akita"}, {"あきた", "Akita"},
	{"大津", "Otsu"}, {"おおつ", "Otsu"},
	{"越谷", "Koshigaya"}, {"こしがや", "Koshigaya"},
	{"前橋", "Maebashi"}, {"まえばし", "Maebashi"},
	{"四日市", "Yokkaichi"}, {"よっかいち", "Yokkaichi"},
	{"盛岡", "Morioka"}, {"もりおか", "Morioka"},
	{"久留米", "Kurume"}, {"くるめ", "Kurume"},
	{"春日井", "Kasugai"}, {"かすがい", "Kasugai"},
	{"青森", "Aomori"}, {"あおもり", "Aomori"},
	{"明石", "Akashi"}, {"あかし", "Akashi"},
	{"函館", "Hakodate"}, {"はこだて", "Hakodate"},
	{"福島", "Fukushima"}, {"ふくしま", "Fukushima"},
	{"水戸", "Mito"}, {"みと", "Mito"},
	{"福井", "Fukui"}, {"ふくい", "Fukui"},
	{"甲府", "Kofu"}, {"こうふ", "Kofu"},
	{"津", "Tsu"}, {"つ", "Tsu"},
	{"徳島", "Tokushima"}, {"とくしま", "Tokushima"},
	{"松江", "Matsue"}, {"まつえ", "Matsue"},
	{"鳥取", "Tottori"}, {"とっとり", "Tottori"},
	{"山口", "Yamaguchi"}, {"やまぐち", "Yamaguchi"},
	{"佐賀", "Saga"}, {"さが", "Saga"},

	// --- World: Asia ---
	{"ソウル", "Seoul"}, {"北京", "Beijing"}, {"上海", "Shanghai"},
	{"バンコク", "Bangkok"}, {"シンガポール", "Singapore"}, {"台北", "Taipei"},
	{"香港", "Hong Kong"}, {"マニラ", "Manila"}, {"ジャカルタ", "Jakarta"},
	{"クアラルンプール", "Kuala Lumpur"}, {"ハノイ", "Hanoi"}, {"ホーチミン", "Ho Chi Minh City"},
	{"ニューデリー", "New Delhi"}, {"デリー", "Delhi"}, {"ムンバイ", "Mumbai"},
	{"ドバイ", "Dubai"}, {"イスタンブール", "Istanbul"},

	// --- World: North America ---
	{"ニューヨーク", "New York"}, {"ロサンゼルス", "Los Angeles"}, {"ロス", "Los Angeles"},
	{"シカゴ", "Chicago"}, {"ヒューストン", "Houston"}, {"フェニックス", "Phoenix"},
	{"フィラデルフィア", "Philadelphia"}, {"サンアントニオ", "San Antonio"},
	{"サンディエゴ", "San Diego"}, {"ダラス", "Dallas"}, {"サンノゼ", "San Jose"},
	{"サンフランシスコ", "San Francisco"}, {"シアトル", "Seattle"},
	{"ワシントン", "Washington"}, {"ボストン", "Boston"}, {"ラスベガス", "Las Vegas"},
	{"マイアミ", "Miami"}, {"アトランタ", "Atlanta"}, {"ホノルル", "Honolulu"},
	{"バンクーバー", "Vancouver"}, {"トロント", "Toronto"}, {"モントリオール", "Montreal"},
	{"メキシコシティ", "Mexico City"},

	// --- World: Europe ---
	{"ロンドン", "London"}, {"パリ", "Paris"}, {"ベルリン", "Berlin"},
	{"マドリード", "Madrid"}, {"ローマ", "Rome"}, {"アムステルダム", "Amsterdam"},
	{"ウィーン", "Vienna"}, {"ダブリン", "Dublin"}, {"ブリュッセル", "Brussels"},
	{"リスボン", "Lisbon"}, {"チューリッヒ", "Zurich"}, {"ジュネーブ", "Geneva"},
	{"プラハ", "Prague"}, {"ブダペスト", "Budapest"}, {"ワルシャワ", "Warsaw"},
	{"アテネ", "Athens"}, {"ストックホルム", "Stockholm"}, {"オスロ", "Oslo"},
	{"コペンハーゲン", "Copenhagen"}, {"ヘルシンキ", "Helsinki"}, {"モスクワ", "Moscow"},
	{"バルセロナ", "Barcelona"}, {"ミラノ", "Milan"}, {"ミュンヘン", "Munich"},

	// --- World: Oceania ---
	{"シドニー", "Sydney"}, {"メルボルン", "Melbourne"}, {"ブリスベン", "Brisbane"},
	{"パース", "Perth"}, {"オークランド", "Auckland"}, {"ウェリントン", "Wellington"},

	// --- World: South America ---
	{"サンパウロ", "Sao Paulo"}, {"リオデジャネイロ", "Rio de Janeiro"},
	{"ブエノスアイレス", "Buenos Aires"}, {"リマ", "Lima"}, {"サンティアゴ", "Santiago"},

	// --- World: Africa ---
	{"カイロ", "Cairo"}, {"ヨハネスブルグ", "Johannesburg"}, {"ケープタウン", "Cape Town"},
	{"ナイロビ", "Nairobi"}, {"ラゴス", "Lagos"},
}

// Resolve scans free-form text for a known city name and returns the
// canonical English name the weather provider understands. English names are
// checked first, then Japanese kanji/kana forms. The second return value is
// false when nothing in the catalogs matched.
//
// Matching is deliberately first-match rather than longest-match; inputs that
// contain several catalog cities resolve to whichever is listed first.
func Resolve(text string) (string, bool) {
	lower := strings.ToLower(text)

	for _, city := range englishCities {
		if strings.Contains(lower, city) {
			return capitalize(city), true
		}
	}

	for _, form := range japaneseForms {
		if strings.Contains(lower, form.Surface) {
			return form.Canonical, true
		}
	}

	return "", false
}

// capitalize uppercases only the leading letter, matching the catalog's
// presentation ("new york" becomes "New york"). Multi-word names keep the
// rest lowercased; the weather provider accepts them either way.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
