package bot

const welcomeMessage = `🤖 <b>KPX SMP 데이터 봇에 오신 것을 환영합니다!</b>

이 봇은 한국전력거래소(KPX)의 시간대별 SMP(계통한계가격) 데이터를 제공합니다.

📝 <b>사용 방법:</b>

<b>명령어:</b>
  /smp - 최신 육지 SMP 데이터
  /today - 오늘 데이터
  /week - 이번주 데이터
  /jeju - 제주 SMP 데이터 🏝
  /help - 도움말

<b>직접 입력:</b>
  "오늘" - 오늘 데이터
  "이번주" - 이번주 데이터
  "제주" - 제주 SMP 데이터 🏝
  "09.30" - 특정 날짜 데이터
  "2025-09-30" - 특정 날짜 (전체 형식)

🎯 원하는 날짜와 지역을 선택해서 조회하세요! 👇`

const helpMessage = `📖 <b>SMP 데이터 봇 사용 가이드</b>

<b>1. 명령어 사용:</b>
  /smp - 최신 육지 SMP 데이터
  /today - 오늘 데이터
  /week - 이번주 전체 데이터
  /jeju - 제주 SMP 데이터 🏝

<b>2. 텍스트로 입력:</b>
  • "오늘" 또는 "today"
  • "이번주" 또는 "week"
  • "제주" - 제주 SMP 데이터 🏝
  • "09.30" (월.일 형식)
  • "2025-09-30" (전체 날짜, YYYY-MM-DD)

<b>3. 날짜 선택 조회:</b>
  • 원하는 날짜를 YYYY-MM-DD 또는 MM.DD 형식으로 입력
  • 선택한 날짜 기준 일주일치 데이터 표시

<b>📊 데이터 정보:</b>
  • 🔴 높은 가격 (120원/kWh 초과)
  • 🟡 중간 가격 (90~120원/kWh)
  • 🟢 낮은 가격 (90원/kWh 이하)`

const greetingReply = `안녕하세요! 👋
SMP 데이터를 조회하려면:
• '오늘' 또는 '이번주' 입력
• 날짜 입력 (예: 09.30)
• '제주' - 제주 데이터 조회
• /help 로 도움말 확인`
