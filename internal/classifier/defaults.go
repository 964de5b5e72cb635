package classifier

import (
	"strings"

	"keywordmatrix/internal/models"
)

// Unsuitable categories
const (
	CatOffTargetAge      = "타겟 연령 외"
	CatOffDomainSubject  = "교육 분야 외"
	CatTestPrep          = "시험/자격증 관련"
	CatOfflineOnly       = "오프라인 중심"
	CatAltEducation      = "특수 교육 관련"
	CatCompetitorBrand   = "브랜드명"
	CatNonPremiumArea    = "비프리미엄 지역 및 업무/대학 지역"
	CatUnrelatedProducts = "기타 상품"
	CatAdultBusiness     = "직장인/성인/비즈니스 타겟 키워드"
	CatDictionary        = "사전/번역 관련"
)

// Suitable categories
const (
	CatEarlyChildhood  = "유아/초등 타겟 영어 교육"
	CatUSCurriculum    = "미국 교육커리큘럼"
	CatContentG1       = "유아/초등 영어 콘텐츠 (G1 이상)"
	CatContentPreK     = "유아/초등 영어 콘텐츠 (Pre-K, K)"
	CatInternational   = "국제학교/글로벌 교육"
	CatEarlyEnglish    = "조기 영어 교육"
	CatPremiumDistrict = "프리미엄 학군 유아/초등 영어"
)

// Expandable categories
const (
	CatOnlineEnglish  = "온라인 영어 교육"
	CatEnglishContent = "영어 콘텐츠"
	CatGeneralEnglish = "일반 영어 교육"
)

// Token groups shared between several rules.
var (
	childMarkers = []string{
		"유아", "아기", "어린이", "아동", "초등", "유치원", "영유아",
		"초1", "초2", "초3", "초4", "초5", "초6", "키즈",
		"1세", "2세", "3세", "4세", "5세", "6세", "7세", "8세", "9세", "10세", "11세", "12세",
		"1살", "2살", "3살", "4살", "5살", "6살", "7살", "8살", "9살", "10살", "11살", "12살",
		"개월", "예비초", "영어유치원", "학년", "방과후", "엄마", "아이",
	}
	englishProducts = []string{
		"영어", "영어교육", "영어학습", "영어공부", "영어학원", "영어교재", "영어교구", "영어프로그램",
		"영어앱", "영어학습지", "영어동화", "영어동요", "영어책", "영어독서", "영어발음", "영어문법",
		"영어단어", "국제학교", "온라인국제학교",
	}
)

func alt(tokens ...string) string {
	return "(" + strings.Join(tokens, "|") + ")"
}

var defaultRegistry = &Registry{
	Unsuitable: RuleSet{
		{CatOffTargetAge, NewAnyToken(
			"중학", "고등", "대학", "성인", "직장인", "노인", "50대", "40대", "30대", "20대",
			"청소년", "중등", "고1", "고2", "고3", "중1", "중2", "중3",
		)},
		{CatOffDomainSubject, NewAnyToken(
			"일본어", "중국어", "프랑스어", "스페인어", "독일어", "베트남어", "태국어", "러시아어", "아랍어",
			"수학", "과학", "사회", "국어", "한국어", "한국사", "물리", "화학", "생물", "지구과학",
			"역사", "문학", "한문", "컴퓨터", "코딩", "프로그래밍", "경제", "미술", "체육", "음악",
			"무용", "태권도", "발레",
		)},
		{CatTestPrep, NewAnyToken(
			"토익", "토플", "아이엘츠", "오픽", "텝스", "HSK", "JLPT", "DELE", "DELF", "TSC", "JPT",
			"TOPIK", "EJU", "AP", "수능", "내신", "모의고사", "TOEIC", "TOEFL", "IELTS", "OPIC", "TEPS",
			"SAT", "SSAT",
		)},
		{CatOfflineOnly, NewAnyToken(
			"방문학습", "방문교사", "대면", "현장체험학습", "체험학습", "체험활동", "캠프", "기숙",
		)},
		{CatAltEducation, NewAnyToken(
			"검정고시", "재수", "편입", "입시", "윈터스쿨", "서머스쿨", "논술", "특목고", "영재",
			"올림피아드", "경시대회", "대회", "마이스터", "특성화",
		)},
		{CatCompetitorBrand, NewAnyToken(
			"눈높이", "구몬", "웅진", "대교", "YBM", "YBM토익", "튼튼영어", "윤선생", "EBSe", "와이즈만",
			"라이즈", "하바", "크라운", "뽀로로", "핑크퐁", "몬테소리", "발도르프", "키즈랜드", "숲유치원",
			"이투스", "메가", "대성", "스카이에듀", "강남구청", "시원스쿨",
		)},
		{CatNonPremiumArea, NewAnyToken(
			"노원구", "도봉구", "강동구", "은평구", "중랑구", "광화문", "여의도", "종로", "홍대", "신촌",
			"용산", "광진구", "구로구", "금천구", "서대문구", "성동구", "성북구", "영등포구", "동작구",
			"관악구", "양천구", "강서구", "마포구",
		)},
		{CatUnrelatedProducts, &TrailingExclusion{
			Tokens: []string{
				"육아", "여행", "장난감", "놀이공원", "인형", "블럭", "퍼즐", "레고", "책장", "가구",
				"영양제", "건강", "운동", "다이어트",
			},
			Except: englishProducts,
		}},
		{CatAdultBusiness, NewAnyToken(
			"비즈니스영어", "비지니스영어", "강남역", "역삼역", "직장인영어", "성인영어", "영어과외알바",
			"영어회화알바", "영어학원창업", "영어공부방창업", "영어학원매매", "영어PT", "왕초보영어",
			"기초영어", "주말영어", "토요일영어", "종로영어", "한달영어", "평생영어", "6개월영어",
			"영어회화주말반", "영어회화단기", "비즈니스영어학원", "비즈니스영어과외", "비즈니스영어회화",
			"비즈니스영어인강", "직장인화상영어", "영어가맹", "영어학원가맹", "영어학원체인점",
			"영어프랜차이즈", "이력서영어", "면접영어", "인터뷰영어", "취업영어", "스피킹", "토킹",
			"프리토킹", "회사", "직장", "취업", "면접", "이력서", "토요일", "평일", "평생", "한달",
			"6개월", "알바", "창업", "매매", "가맹", "PT",
		)},
		{CatDictionary, NewAnyToken("사전", "번역", "번역기", "번역사", "통역", "통역사")},
	},

	Suitable: RuleSet{
		{CatEarlyChildhood, MustPattern(alt(childMarkers...) + ".*영어|영어.*" + alt(childMarkers...))},
		{CatUSCurriculum, MustPattern(alt(
			"미국", "공교육", "교과서", "커리큘럼", "IXL", "북미", "아메리칸", "미국식", "교육과정", "학제",
			"영어권", "미국교과", "미국식교육", "미교", "미국학교", "미국초등", "미국유치원", "미교리딩",
			"미국교과서리딩", "미국교과서읽는리딩단계",
		))},
		{CatContentG1, MustPattern(alt(
			"영어문법", "영문법", "영어단어", "영단어", "영어교구", "영어학습지", "영어교재", "영어프로그램",
			"영어앱", "영어책", "원서", "영어독서", "영어발음", "영어학습", "영어공부",
		) + ".*" + alt("유아", "초등", "어린이", "아동", "키즈", "아이"))},
		{CatContentPreK, MustPattern(alt(
			"영어놀이", "영어동요", "영어동화", "알파벳", "사이트워드", "파닉스", "영어게임", "영어애니메이션",
			"영어학습게임", "영어만화", "애니메이션영어",
		))},
		{CatInternational, MustPattern(alt(
			"국제학교", "인터내셔널스쿨", "글로벌학교", "국제교육", "글로벌교육", "외국인학교", "온라인국제학교",
			"채드윅", "스쿨링", "해외학교", "글로벌스쿨", "국제초등학교", "국제유치원", "외국교육", "외국학교",
			"국제교과", "IB", "국제학생", "글로벌인재", "국제교육과정", "글로벌교육과정", "인터내셔널교육",
			"온라인스쿨", "캐나다온라인고등학교", "로렐스프링스스쿨", "로렐스프링스", "LAURELSPRINGSSCHOOL", "ICNA",
		))},
		{CatEarlyEnglish, MustPattern(alt(
			"조기영어", "조기교육", "영어조기교육", "영어조기", "영어조기학습",
		))},
		{CatPremiumDistrict, MustPattern(alt(
			"강남", "대치", "목동", "청담", "삼성동", "도곡", "양재", "개포", "송파", "잠실", "분당", "판교",
			"동탄", "광교", "송도", "위례", "일산", "하남",
		) + ".*" + alt(
			"초등", "유아", "어린이", "아동", "키즈", "영어", "영어학원", "영어교육", "영어학습", "영어공부",
		))},
	},

	Expandable: RuleSet{
		{CatOnlineEnglish, MustPattern(alt(
			"온라인", "화상", "인터넷", "비대면", "원격", "디지털", "스마트", "태블릿", "패드", "앱", "어플",
			"홈스쿨", "홈스쿨링", "홈러닝", "자기주도", "자기주도학습", "엄마표", "e러닝", "이러닝",
			"인터넷강의", "온라인강의", "온라인수업", "온라인학습", "온라인교육", "스마트러닝",
		) + ".*영어")},
		{CatEnglishContent, MustPattern(alt(
			"영어책", "영어독서", "영어발음", "영어문법", "영어단어", "영어학습지", "영어교재", "영어교구",
			"영어프로그램", "영어앱", "영어학습", "영어공부",
		))},
		{CatGeneralEnglish, MustPattern(alt(
			"영어", "원어민", "영어학원", "영어공부", "영어학습", "영어교육", "영어수업", "영어강의",
			"영어과외", "영어회화", "영어인강", "영어학습지", "영어교재", "영어교구", "영어프로그램", "영어앱",
		))},
	},

	Buckets: BucketMap{
		CatInternational:     models.BucketStrategicSweetSpot,
		CatPremiumDistrict:   models.BucketStrategicSweetSpot,
		CatUSCurriculum:      models.BucketSpecializedNiche,
		CatEarlyChildhood:    models.BucketTargetCompetitive,
		CatContentPreK:       models.BucketTargetCompetitive,
		CatCompetitorBrand:   models.BucketTargetCompetitive,
		CatEnglishContent:    models.BucketExpandableKeywords,
		CatGeneralEnglish:    models.BucketExpandableKeywords,
		CatOnlineEnglish:     models.BucketExpandableKeywords,
		CatUnrelatedProducts: models.BucketJunkKeywords,
		CatNonPremiumArea:    models.BucketJunkKeywords,
		CatOffDomainSubject:  models.BucketOffTargetCompetitive,
		CatTestPrep:          models.BucketOffTargetCompetitive,
		CatOfflineOnly:       models.BucketOffTargetCompetitive,
		CatAdultBusiness:     models.BucketOffTargetCompetitive,
		CatOffTargetAge:      models.BucketOffTargetCompetitive,
		CatAltEducation:      models.BucketOffTargetCompetitive,
		CatDictionary:        models.BucketOffTargetCompetitive,
	},
}

// DefaultRegistry returns the built-in rule registry. The returned value is
// shared; treat it as read-only.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
