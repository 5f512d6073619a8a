package prompt

import (
	"strings"

	"go-image-cache/internal/cache"
)

// EraContext grounds a prompt in one historical period
type EraContext struct {
	Name               string
	Environment        string
	Props              string
	ForbiddenLandmarks string
	Palette            string
}

type eraEntry struct {
	matchers []string
	context  EraContext
}

// eraTable is evaluated top to bottom and the first matching entry wins.
// More specific names must come before names they contain (고조선 before 조선,
// 통일신라 before 신라).
var eraTable = []eraEntry{
	{
		matchers: []string{"고조선", "gojoseon", "청동기", "bronze age"},
		context: EraContext{
			Name:               "Gojoseon (Bronze Age Korea)",
			Environment:        "open river valleys and low hills with thatched pit houses and stone dolmens",
			Props:              "mandolin-shaped bronze daggers on display, bronze mirrors, plain pottery, hemp clothing",
			ForbiddenLandmarks: "no palaces, no tiled roofs, no Buddhist temples or pagodas, no Joseon-era buildings such as Gyeongbokgung",
			Palette:            "earthy browns, moss green, bronze and soft sky blue",
		},
	},
	{
		matchers: []string{"구석기", "신석기", "선사", "paleolithic", "neolithic", "prehistoric"},
		context: EraContext{
			Name:               "prehistoric Korea",
			Environment:        "riverside settlements with round pit dwellings, shell mounds and forests",
			Props:              "comb-pattern pottery, polished stone tools, fishing nets, animal-skin clothing",
			ForbiddenLandmarks: "no metal objects, no palaces, no temples, no tiled roofs, no written signs",
			Palette:            "clay brown, river blue, leaf green and stone grey",
		},
	},
	{
		matchers: []string{"고구려", "goguryeo"},
		context: EraContext{
			Name:               "Goguryeo kingdom",
			Environment:        "rugged northern mountains, stone fortresses on hilltops and wide plains for horse riding",
			Props:              "lamellar armor on display stands, horses, tomb mural motifs, Goguryeo-style hats with feathers",
			ForbiddenLandmarks: "no Joseon palaces, no Silla pagodas, no Chinese Forbidden City",
			Palette:            "deep red, ochre, black ink lines and mountain green",
		},
	},
	{
		matchers: []string{"백제", "baekje"},
		context: EraContext{
			Name:               "Baekje kingdom",
			Environment:        "gentle river plains along the Geum river with elegant wooden halls",
			Props:              "gilt-bronze incense burners, lotus-patterned roof tiles, refined ceramics, trading boats",
			ForbiddenLandmarks: "no Joseon palaces, no Goguryeo mountain fortresses, no Japanese castles",
			Palette:            "soft gold, lotus pink, stone grey and river blue",
		},
	},
	{
		matchers: []string{"통일신라", "통일 신라", "unified silla"},
		context: EraContext{
			Name:               "Unified Silla",
			Environment:        "the royal capital Gyeongju with stone pagodas, temples and tidy tiled roofs",
			Props:              "stone lanterns, Buddhist statues, gilt-bronze bells, silk robes",
			ForbiddenLandmarks: "no Joseon palaces such as Gyeongbokgung, no Chinese Forbidden City, no Japanese shrines",
			Palette:            "granite grey, temple red, gold leaf and pine green",
		},
	},
	{
		matchers: []string{"신라", "silla"},
		context: EraContext{
			Name:               "Silla kingdom",
			Environment:        "the early capital Gyeongju with large round burial mounds and fields",
			Props:              "golden crowns with tree-shaped ornaments, jade pendants, glassware, horse ornaments",
			ForbiddenLandmarks: "no Joseon palaces, no Goryeo celadon workshops, no Japanese castles",
			Palette:            "gold, jade green, earth brown and pale sky blue",
		},
	},
	{
		matchers: []string{"가야", "gaya"},
		context: EraContext{
			Name:               "Gaya confederacy",
			Environment:        "river deltas in the south with iron workshops and harbors",
			Props:              "iron ingots, grey stoneware, horse gear, trading ships",
			ForbiddenLandmarks: "no palaces, no Joseon buildings, no pagodas",
			Palette:            "iron grey, clay red, sea blue and reed green",
		},
	},
	{
		matchers: []string{"삼국", "three kingdoms"},
		context: EraContext{
			Name:               "Three Kingdoms of Korea",
			Environment:        "early Korean kingdoms with wooden halls, earthen walls and rice fields",
			Props:              "bronze and gold ornaments, early Buddhist statues, horses, silk and hemp clothing",
			ForbiddenLandmarks: "no Joseon palaces, no Chinese Forbidden City, no Japanese castles",
			Palette:            "ochre, jade green, gold and soft grey",
		},
	},
	{
		matchers: []string{"발해", "balhae"},
		context: EraContext{
			Name:               "Balhae kingdom",
			Environment:        "northern plains and the planned capital Sanggyeong with wide avenues",
			Props:              "stone lanterns, glazed roof tiles, fur-trimmed robes, Buddhist statues",
			ForbiddenLandmarks: "no Joseon palaces, no southern Silla pagodas, no Chinese Forbidden City",
			Palette:            "slate blue, glazed green, snow white and earth brown",
		},
	},
	{
		matchers: []string{"고려", "goryeo"},
		context: EraContext{
			Name:               "Goryeo dynasty",
			Environment:        "the capital Gaegyeong with Buddhist temples, markets and wooden palaces",
			Props:              "jade-green celadon vases, wooden printing blocks, Buddhist paintings, scholar robes",
			ForbiddenLandmarks: "no Joseon palaces such as Gyeongbokgung, no Hanok villages of later centuries, no Japanese shrines",
			Palette:            "celadon green, temple red, ivory and soft gold",
		},
	},
	{
		matchers: []string{"대한제국", "korean empire"},
		context: EraContext{
			Name:               "Korean Empire",
			Environment:        "late nineteenth century Seoul mixing traditional palaces with early Western-style buildings",
			Props:              "streetcars, early telegraph poles, imperial robes, the Taegukgi flag",
			ForbiddenLandmarks: "no modern skyscrapers, no cars, no smartphones",
			Palette:            "imperial yellow, deep navy, brick red and ivory",
		},
	},
	{
		matchers: []string{"조선", "joseon"},
		context: EraContext{
			Name:               "Joseon dynasty",
			Environment:        "Hanyang with Gyeongbokgung palace, hanok villages with tiled roofs and markets",
			Props:              "hanbok, gat hats, calligraphy brushes, paper windows, rain gauges and sundials",
			ForbiddenLandmarks: "no Chinese Forbidden City, no Japanese castles or torii gates, no Western buildings",
			Palette:            "hanbok pastels, dancheong red and green, ivory paper and pine green",
		},
	},
	{
		matchers: []string{"일제강점기", "일제", "japanese occupation", "colonial"},
		context: EraContext{
			Name:               "period of Japanese occupation",
			Environment:        "early twentieth century Korean towns with hanok houses and a few brick buildings",
			Props:              "Taegukgi flags, printed pamphlets, school uniforms, hanbok",
			ForbiddenLandmarks: "no modern skyscrapers, no smartphones, no present-day cars",
			Palette:            "muted navy, ivory, brick red and soft green",
		},
	},
	{
		matchers: []string{"대한민국", "현대", "modern", "contemporary"},
		context: EraContext{
			Name:               "modern Republic of Korea",
			Environment:        "Korean cities and countryside from the late twentieth century",
			Props:              "Taegukgi flags, school classrooms, traditional markets, public squares",
			ForbiddenLandmarks: "no buildings from other countries, no futuristic objects",
			Palette:            "clean sky blue, white, Taegukgi red and blue accents",
		},
	},
}

var defaultEra = EraContext{
	Name:               "Korean history",
	Environment:        "a traditional Korean setting appropriate to the topic",
	Props:              "period-appropriate Korean clothing and everyday objects",
	ForbiddenLandmarks: "no buildings from other countries or later periods",
	Palette:            "natural earth tones, pine green and soft sky blue",
}

// LookupEra returns the context of the first table entry whose matcher is
// contained in era, and false with the default context when nothing matches
func LookupEra(era string) (EraContext, bool) {
	normalized := cache.Normalize(era)
	if normalized == "" {
		return defaultEra, false
	}
	for _, entry := range eraTable {
		for _, m := range entry.matchers {
			if strings.Contains(normalized, m) {
				return entry.context, true
			}
		}
	}
	return defaultEra, false
}
