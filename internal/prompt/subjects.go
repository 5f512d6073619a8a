package prompt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"go-image-cache/internal/cache"
)

// minReverseMatchRunes guards reverse containment so that a single syllable
// keyword does not match every subject that happens to contain it
const minReverseMatchRunes = 2

type subjectEntry struct {
	key         string
	description string
}

// subjectTable is matched in order; earlier entries take priority
var subjectTable = []subjectEntry{
	{"고인돌", "a large stone dolmen made of a flat capstone resting on upright stones in a grassy field"},
	{"비파형 동검", "a mandolin-shaped bronze dagger from Gojoseon displayed on a cloth as a museum artifact"},
	{"단군", "Dangun, the legendary founder of Gojoseon, as a kind elder in simple ancient robes on a mountain"},
	{"광개토대왕", "King Gwanggaeto of Goguryeo standing beside his tall carved stone stele"},
	{"무용총", "the dancers and hunters painted on the wall of the Goguryeo Muyongchong tomb mural"},
	{"고분벽화", "colorful Goguryeo tomb wall paintings of dancers, hunters and the four guardian animals"},
	{"무령왕릉", "the brick-lined tomb of King Muryeong of Baekje with its arched chamber and treasures"},
	{"금동대향로", "the Baekje gilt-bronze incense burner shaped like a mountain with a phoenix on top"},
	{"첨성대", "Cheomseongdae, the bottle-shaped stone star observatory of Silla under a starry sky"},
	{"석굴암", "the Seokguram grotto with its serene granite Buddha statue inside a domed cave"},
	{"불국사", "Bulguksa temple with its stone stairways and wooden halls on a hillside"},
	{"다보탑", "the ornate Dabotap stone pagoda in the courtyard of Bulguksa"},
	{"장보고", "Jang Bogo overseeing trading ships at the busy Cheonghaejin harbor"},
	{"대조영", "Dae Joyeong, founder of Balhae, greeting people on the northern plains"},
	{"발해", "the Balhae capital with stone lanterns and glazed roof tiles"},
	{"팔만대장경", "the Tripitaka Koreana, thousands of carved wooden printing blocks stored on long shelves"},
	{"고려청자", "an elegant jade-green Goryeo celadon vase with inlaid crane and cloud patterns"},
	{"청자", "a jade-green celadon ceramic vase with inlaid patterns"},
	{"직지", "monks printing the Jikji book with movable metal type in a Goryeo temple"},
	{"금속활자", "small movable metal type pieces arranged in a tray beside a printed page"},
	{"세종대왕", "King Sejong the Great in royal robes discussing ideas with scholars"},
	{"훈민정음", "scholars presenting the Hunminjeongeum book to King Sejong"},
	{"한글", "scholars of the Hall of Worthies studying the shapes of the new Korean alphabet"},
	{"측우기", "a bronze rain gauge standing on a stone pedestal in a palace courtyard"},
	{"자격루", "the Jagyeongnu self-striking water clock with its bronze vessels and wooden figures"},
	{"거북선", "a turtle ship, a Joseon ship with a dragon head and a covered roof with iron spikes, sailing on the sea"},
	{"이순신", "Admiral Yi Sun-sin in Joseon naval uniform standing calmly on the deck of a ship"},
	{"정약용", "Jeong Yak-yong studying construction plans with a pulley crane"},
	{"거중기", "the geojunggi pulley crane lifting large stone blocks for the Suwon fortress"},
	{"수원화성", "the Hwaseong Fortress walls and gates of Suwon"},
	{"김홍도", "a lively genre scene in the style of Kim Hong-do with villagers at work"},
	{"풍속화", "a lively Joseon genre painting scene of villagers working and playing"},
	{"독립문", "the Independence Gate in Seoul, a stone arch gate"},
	{"유관순", "Yu Gwan-sun as a young student in hanbok holding a Taegukgi flag"},
	{"3.1 운동", "crowds of people in hanbok peacefully waving Taegukgi flags for independence"},
	{"만세", "crowds of people in hanbok peacefully raising their arms and waving Taegukgi flags"},
	{"경복궁", "Gyeongbokgung palace with its colorful dancheong eaves and stone courtyard"},
	{"dolmen", "a large stone dolmen made of a flat capstone resting on upright stones in a grassy field"},
	{"turtle ship", "a turtle ship, a Joseon ship with a dragon head and a covered roof with iron spikes, sailing on the sea"},
	{"celadon", "a jade-green celadon ceramic vase with inlaid patterns"},
	{"hangul", "scholars of the Hall of Worthies studying the shapes of the new Korean alphabet"},
	{"cheomseongdae", "Cheomseongdae, the bottle-shaped stone star observatory of Silla under a starry sky"},
}

// SubjectMatch is the resolved description of one keyword
type SubjectMatch struct {
	Keyword     string
	Description string
	Matched     bool
}

// LookupSubject finds the first table entry for keyword. A keyword matches
// an entry when either contains the other after normalization; the reverse
// direction needs at least two runes. Unknown keywords get a generic scene
// description tied to the era.
func LookupSubject(keyword string, era EraContext) SubjectMatch {
	kw := cache.Normalize(keyword)
	if kw == "" {
		return SubjectMatch{Keyword: keyword}
	}

	for _, entry := range subjectTable {
		key := cache.Normalize(entry.key)
		if strings.Contains(kw, key) ||
			(utf8.RuneCountInString(kw) >= minReverseMatchRunes && strings.Contains(key, kw)) {
			return SubjectMatch{Keyword: keyword, Description: entry.description, Matched: true}
		}
	}

	return SubjectMatch{
		Keyword:     keyword,
		Description: fmt.Sprintf("a scene illustrating %s from the %s period", strings.TrimSpace(keyword), era.Name),
	}
}

// LookupSubjects resolves every non-empty keyword, preserving order
func LookupSubjects(keywords []string, era EraContext) []SubjectMatch {
	matches := make([]SubjectMatch, 0, len(keywords))
	for _, kw := range keywords {
		if strings.TrimSpace(kw) == "" {
			continue
		}
		matches = append(matches, LookupSubject(kw, era))
	}
	return matches
}
